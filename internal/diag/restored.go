package diag

// Restored is a diagnostic reloaded from the result cache. It preserves the
// numeric code and the rendered messages of the original kind; the structured
// payload is not kept across runs.
type Restored struct {
	Original Code
	Long     string
	Short    string
}

func (Restored) errorKind()            {}
func (k Restored) Code() Code          { return k.Original }
func (k Restored) Description() string { return k.Long }
func (k Restored) Concise() string     { return k.Short }
