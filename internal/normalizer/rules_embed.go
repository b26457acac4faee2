package normalizer

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/rules.yaml
var rulesYAML []byte

// RulesConfig aturan pencocokan yang di-load dari YAML
type RulesConfig struct {
	StreetStopWords    []string `yaml:"street_stop_words"`
	MinAdminWordLength int      `yaml:"min_admin_word_length"`
}

var (
	rulesOnce sync.Once
	rules     *RulesConfig
	rulesErr  error
)

// LoadRulesConfig load aturan dari embedded YAML
func LoadRulesConfig() (*RulesConfig, error) {
	rulesOnce.Do(func() {
		cfg := &RulesConfig{}
		if err := yaml.Unmarshal(rulesYAML, cfg); err != nil {
			rulesErr = fmt.Errorf("gagal parse rules.yaml: %w", err)
			return
		}
		for i, w := range cfg.StreetStopWords {
			cfg.StreetStopWords[i] = strings.ToLower(strings.TrimSpace(w))
		}
		rules = cfg
	})
	return rules, rulesErr
}

// MustRules seperti LoadRulesConfig tapi panic jika YAML rusak
func MustRules() *RulesConfig {
	cfg, err := LoadRulesConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}
