package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-matcher/internal/export"
	"github.com/spigell/resume-matcher/internal/report"
)

const (
	app       = "resume-matcher"
	envPrefix = "RESUME_MATCHER"

	defaultMaxResumes = 3
)

type Config struct {
	Job           string            `mapstructure:"job"`
	Resumes       []string          `mapstructure:"resumes"`
	Mode          string            `mapstructure:"mode"`
	OutputDir     string            `mapstructure:"output-dir"`
	Export        string            `mapstructure:"export"`
	ExportName    string            `mapstructure:"export-name"`
	StopWordsFile string            `mapstructure:"stop-words-file"`
	ExcludeFile   string            `mapstructure:"exclude-file"`
	MaxResumes    int               `mapstructure:"max-resumes"`
	GapsLimit     int               `mapstructure:"gaps-limit"`
	Tagger        *TaggerConfig     `mapstructure:"tagger"`
	S3            *S3Config         `mapstructure:"s3"`
	HeadHunter    *HeadHunterConfig `mapstructure:"headhunter"`
}

type TaggerConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
	BatchSize    int    `mapstructure:"batch-size"`
}

type S3Config struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	AccessKey     string `mapstructure:"access-key" json:"-"`
	AccessKeyFile string `mapstructure:"access-key-file"`
	SecretKey     string `mapstructure:"secret-key" json:"-"`
	SecretKeyFile string `mapstructure:"secret-key-file"`
}

type HeadHunterConfig struct {
	UserAgent string `mapstructure:"user-agent"`
	APIURL    string `mapstructure:"api-url"`
	TokenFile string `mapstructure:"token-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-matcher compares resumes against a job description by keywords",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output-dir", export.DefaultDir)
	v.SetDefault("max-resumes", defaultMaxResumes)
	v.SetDefault("gaps-limit", report.DefaultGapLimit)
	v.SetDefault("tagger.provider", "prose")
	v.SetDefault("tagger.gemini.max-retries", 3)
	v.SetDefault("tagger.gemini.max-log-length", 200)
	v.SetDefault("s3.region", "auto")
}

func initConfig() {
	// Only the analyze command reads configuration.
	if analyzeCmd.CalledAs() == "" {
		return
	}

	if err := loadConfig(viper.GetViper(), cfgFile); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads .env, binds environment variables and reads the optional
// config file. An explicit file must exist; the default one may be absent.
func loadConfig(v *viper.Viper, file string) error {
	_ = godotenv.Load()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("tagger.gemini.api-key-file", envPrefix+"_TAGGER_GEMINI_API_KEY_FILE", "GEMINI_API_KEY_FILE"); err != nil {
		return err
	}
	if err := v.BindEnv("headhunter.token-file", envPrefix+"_HEADHUNTER_TOKEN_FILE", "HH_TOKEN_FILE"); err != nil {
		return err
	}

	if file != "" {
		v.SetConfigFile(file)
		return v.ReadInConfig()
	}

	v.AddConfigPath(".")
	v.SetConfigName(app)
	v.SetConfigType("yaml")

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.Tagger == nil {
		config.Tagger = &TaggerConfig{}
	}
	if config.Tagger.Gemini == nil {
		config.Tagger.Gemini = &GeminiConfig{}
	}
	if config.S3 == nil {
		config.S3 = &S3Config{}
	}
	if config.HeadHunter == nil {
		config.HeadHunter = &HeadHunterConfig{}
	}
	if config.MaxResumes <= 0 {
		config.MaxResumes = defaultMaxResumes
	}
	config.Resumes = splitRefs(config.Resumes...)

	return config, nil
}

// splitRefs accepts repeated and comma separated references.
func splitRefs(values ...string) []string {
	var refs []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				refs = append(refs, part)
			}
		}
	}
	return refs
}
