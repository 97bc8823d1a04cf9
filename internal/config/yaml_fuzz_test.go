package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func FuzzConfigParse(f *testing.F) {
	f.Add([]byte("output_format: json\nteam_size: 4\n"))
	f.Add([]byte(""))
	f.Add([]byte("---"))
	f.Add([]byte("server:\n  addr: :8501\n"))
	f.Add([]byte("{invalid"))

	f.Fuzz(func(t *testing.T, data []byte) {
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return
		}
		// Round-trip: if parse succeeded, marshal and validate should not panic.
		yaml.Marshal(&cfg) //nolint:errcheck,gosec // fuzz: testing crash-freedom
		_ = Validate(&cfg)
	})
}
