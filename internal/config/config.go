package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Apify struct {
		BaseURL           string `yaml:"base_url" json:"base_url"`
		LeadActor         string `yaml:"lead_actor" json:"lead_actor"`
		PostActor         string `yaml:"post_actor" json:"post_actor"`
		RunTimeoutSeconds int    `yaml:"run_timeout_seconds" json:"run_timeout_seconds"`
	} `yaml:"apify" json:"apify"`

	Enrich struct {
		// Cap limits how many leads are enriched per run; 0 = unlimited.
		Cap            int `yaml:"cap" json:"cap"`
		TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`
	} `yaml:"enrich" json:"enrich"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
