package catalog

// Option applies a configuration option to Load.
type Option func(*loadOptions)

type loadOptions struct {
	path string
	data []byte
}

// WithFile loads the catalog from a YAML file instead of the embedded default.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		if path != "" {
			o.path = path
			o.data = nil
		}
	}
}

// WithData loads the catalog from an in-memory YAML document.
func WithData(data []byte) Option {
	return func(o *loadOptions) {
		if data != nil {
			o.data = data
			o.path = ""
		}
	}
}
