package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		Host            string
		ShutdownTimeout time.Duration
	}

	QuizConfig struct {
		BanksDir   string
		TimeLimit  time.Duration // countdown shown to students; never enforced
		SessionTTL time.Duration // idle sessions older than this are purged (0: never)
	}

	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		WorkDir      string
		RollbarToken string
		Server       ServerConfig
		Quiz         QuizConfig
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "Masomo")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("serverAddress", ":8000")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("shutdownTimeout", 10*time.Second)
	conf.SetDefault("banksDir", "")
	conf.SetDefault("quizTimeLimit", 5*time.Minute)
	conf.SetDefault("sessionTTL", 2*time.Hour)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	banksDir := conf.GetString("banksDir")
	if banksDir != "" && !filepath.IsAbs(banksDir) {
		banksDir = filepath.Join(wd, banksDir)
	}

	return &Config{
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		WorkDir:      wd,
		RollbarToken: conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:         conf.GetString("serverAddress"),
			Host:            conf.GetString("serverHost"),
			ShutdownTimeout: conf.GetDuration("shutdownTimeout"),
		},
		Quiz: QuizConfig{
			BanksDir:   banksDir,
			TimeLimit:  conf.GetDuration("quizTimeLimit"),
			SessionTTL: conf.GetDuration("sessionTTL"),
		},
	}
}
