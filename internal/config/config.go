package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// struct pour les paramètres de configuration
type Config struct {
	// Connexions
	MPVSocket      string `yaml:"mpv_socket"`
	AnkiConnectURL string `yaml:"ankiconnect_url"`

	// Destination des notes
	Deck            string `yaml:"deck"`
	Model           string `yaml:"model"`
	TagTemplate     string `yaml:"tag_template"`
	ExternalTag     string `yaml:"external_tag"`
	SubdeckTemplate string `yaml:"subdeck_template"`
	AllowDuplicates bool   `yaml:"allow_duplicates"`
	DuplicateScope  string `yaml:"duplicate_scope"`

	// Champs de note (nom vide = champ non renseigné)
	Fields struct {
		Sentence   string `yaml:"sentence"`
		Secondary  string `yaml:"secondary"`
		Image      string `yaml:"image"`
		Audio      string `yaml:"audio"`
		Vocabulary string `yaml:"vocabulary"`
		VocabAudio string `yaml:"vocabulary_audio"`
		MiscInfo   string `yaml:"misc_info"`
	} `yaml:"fields"`
	MiscInfoTemplate string `yaml:"misc_info_template"`

	// Politique de fusion (mise à jour de note existante)
	MergeOrder    string `yaml:"merge_order"`   // append | prepend
	Pronunciation string `yaml:"pronunciation"` // never | if_empty | always
	ForvoFormat   string `yaml:"forvo_format"`  // mp3 | ogg

	// Capture
	StripSpaces bool `yaml:"strip_spaces"`
	Autocopy    bool `yaml:"autocopy"`

	// Extraction média
	FFmpegPath      string  `yaml:"ffmpeg_path"`
	MediaDir        string  `yaml:"media_dir"`
	SnapshotExt     string  `yaml:"snapshot_ext"`
	SnapshotWidth   int     `yaml:"snapshot_width"`
	SnapshotQuality int     `yaml:"snapshot_quality"`
	AudioExt        string  `yaml:"audio_ext"`
	AudioBitrate    string  `yaml:"audio_bitrate"`
	AudioPadding    float64 `yaml:"audio_padding"`

	configFilePath string
}

// configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	c.MPVSocket = "/tmp/mpv-ankiclip"
	c.AnkiConnectURL = "http://127.0.0.1:8765"

	c.Deck = "Mining"
	c.Model = "Basic"
	c.TagTemplate = "ankiclip %n"
	c.DuplicateScope = "deck"

	c.Fields.Sentence = "Front"
	c.Fields.Audio = "Back"
	c.MiscInfoTemplate = "%n EP%d (%t)"

	c.MergeOrder = "append"
	c.Pronunciation = "never"
	c.ForvoFormat = "mp3"

	c.FFmpegPath = "ffmpeg"
	c.SnapshotExt = ".webp"
	c.SnapshotQuality = 2
	c.AudioExt = ".mp3"
	c.AudioPadding = 0.25

	return c
}

// Load lit la config depuis path. Les champs absents conservent les valeurs
// par défaut ; la config chargée est normalisée puis validée.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration invalide (%s) : %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalizeConfig() {
	c.MergeOrder = strings.TrimSpace(strings.ToLower(c.MergeOrder))
	if c.MergeOrder == "" {
		c.MergeOrder = "append"
	}
	c.Pronunciation = strings.TrimSpace(strings.ToLower(c.Pronunciation))
	if c.Pronunciation == "" {
		c.Pronunciation = "never"
	}
	c.ForvoFormat = strings.TrimSpace(strings.ToLower(c.ForvoFormat))
	if c.ForvoFormat == "" {
		c.ForvoFormat = "mp3"
	}
	c.DuplicateScope = strings.TrimSpace(c.DuplicateScope)
	if c.DuplicateScope == "" {
		c.DuplicateScope = "deck"
	}

	// extensions : toujours préfixées d'un point
	c.SnapshotExt = normalizeExt(c.SnapshotExt, ".webp")
	c.AudioExt = normalizeExt(c.AudioExt, ".mp3")

	if c.SnapshotQuality <= 0 {
		c.SnapshotQuality = 2
	}
	if c.AudioPadding < 0 {
		c.AudioPadding = 0
	}
	if strings.TrimSpace(c.FFmpegPath) == "" {
		c.FFmpegPath = "ffmpeg"
	}
	if strings.TrimSpace(c.MediaDir) == "" {
		c.MediaDir = os.TempDir()
	}
}

func normalizeExt(ext, fallback string) string {
	ext = strings.TrimSpace(strings.ToLower(ext))
	if ext == "" {
		return fallback
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
