package job

import "fmt"

// requiredFields collects every unset required field and reports them in a
// single error, rather than stopping at the first one.
type requiredFields struct {
	missing []string
}

func (r *requiredFields) want(name, value string) {
	if value == "" {
		r.missing = append(r.missing, name)
	}
}

func (r *requiredFields) wantInt(name string, value int) {
	if value == 0 {
		r.missing = append(r.missing, name)
	}
}

func (r *requiredFields) err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required fields: %v", r.missing)
}
