package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	ListenAddr string   `koanf:"listenaddr"`
	Frontend   Frontend `koanf:"frontend"`
	Auth       Auth     `koanf:"auth"`
	Database   Database `koanf:"db"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Auth struct {
	// TokenSecret signs session tokens. Must be overridden outside local development.
	TokenSecret string `koanf:"tokensecret"`
	// TokenTTLHours is the session token lifetime in hours.
	TokenTTLHours int `koanf:"tokenttlhours"`
	// AdminUsername and AdminPassword seed a bootstrap admin account when the
	// user table is empty. Leave AdminPassword empty to disable seeding.
	AdminUsername string `koanf:"adminusername"`
	AdminPassword string `koanf:"adminpassword"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		ListenAddr: ":8282",
		Frontend: Frontend{
			Enabled: true,
		},
		Auth: Auth{
			TokenSecret:   "fleetbook-dev-secret",
			TokenTTLHours: 720,
			AdminUsername: "admin",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "fleetbook",
			Pass:   "",
			Name:   "fleetbook",
			Schema: "fleetbook",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "FLEETBOOK_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "FLEETBOOK_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
