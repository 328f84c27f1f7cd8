package ast

import (
	"slices"
	"strings"
)

// localPrefix marks the head of a reference qualified by the definition it is
// local to, e.g. "$local_app?main$settings" for a local `settings` inside
// `app.main`. Delocalizing recovers "app.main.settings".
const localPrefix = "$local_"

// Reference is a dotted, order-significant path identifying a declaration.
// It is an immutable value; all methods return new references.
type Reference struct {
	parts []string
}

// NewReference builds a reference from its dotted parts.
func NewReference(parts ...string) Reference {
	return Reference{parts: slices.Clone(parts)}
}

// ParseReference splits a dotted path into a reference.
func ParseReference(dotted string) Reference {
	if dotted == "" {
		return Reference{}
	}
	return Reference{parts: strings.Split(dotted, ".")}
}

// NewLocalReference qualifies name by the definition it is local to.
func NewLocalReference(qualifier string, name string) Reference {
	head := localPrefix + strings.ReplaceAll(qualifier, ".", "?")
	return Reference{parts: []string{head, name}}
}

// Empty reports whether the reference has no parts.
func (r Reference) Empty() bool {
	return len(r.parts) == 0
}

// Len returns the number of parts.
func (r Reference) Len() int {
	return len(r.parts)
}

// Parts returns a copy of the dotted parts.
func (r Reference) Parts() []string {
	return slices.Clone(r.parts)
}

// Head returns the first part, or "".
func (r Reference) Head() string {
	if len(r.parts) == 0 {
		return ""
	}
	return r.parts[0]
}

// Last returns the final part, or "".
func (r Reference) Last() string {
	if len(r.parts) == 0 {
		return ""
	}
	return r.parts[len(r.parts)-1]
}

// Append returns the reference extended with name.
func (r Reference) Append(name string) Reference {
	out := make([]string, 0, len(r.parts)+1)
	out = append(out, r.parts...)
	out = append(out, name)
	return Reference{parts: out}
}

// IsLocal reports whether the reference is qualified by an enclosing
// definition.
func (r Reference) IsLocal() bool {
	return len(r.parts) > 0 && strings.HasPrefix(r.parts[0], localPrefix)
}

// Delocalize strips function-local qualification, recovering the underlying
// module-level name. Non-local references are returned unchanged.
func (r Reference) Delocalize() Reference {
	if !r.IsLocal() {
		return r
	}
	qualifier := strings.TrimPrefix(r.parts[0], localPrefix)
	qualifier = strings.ReplaceAll(qualifier, "?", ".")
	out := make([]string, 0, len(r.parts)+1)
	if qualifier != "" {
		out = append(out, strings.Split(qualifier, ".")...)
	}
	out = append(out, r.parts[1:]...)
	return Reference{parts: out}
}

// Equal reports structural equality.
func (r Reference) Equal(other Reference) bool {
	return slices.Equal(r.parts, other.parts)
}

// String renders the dotted form.
func (r Reference) String() string {
	return strings.Join(r.parts, ".")
}
