package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		AccessTokenTTL  Duration `json:"access_token_ttl"`
		RefreshTokenTTL Duration `json:"refresh_token_ttl"`
		EmailTokenTTL   Duration `json:"email_token_ttl"`
		BcryptCost      int      `json:"bcrypt_cost"`
		Version         string   `json:"version"`
		LogLevel        string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Cache struct {
		Address  string   `json:"redis_address"`
		Username string   `json:"redis_username"`
		Password string   `json:"redis_password"`
		DB       int      `json:"redis_db"`
		TLS      bool     `json:"redis_tls"`
		UserTTL  Duration `json:"user_ttl"`
	} `json:"cache,omitempty"`

	Mail struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
		FromName string `json:"from_name"`
		SSL      bool   `json:"ssl"`
	} `json:"mail,omitempty"`

	Broker struct {
		URL        string `json:"url"`
		EmailQueue string `json:"email_queue"`
	} `json:"broker,omitempty"`

	ObjectStorage struct {
		CloudName       string   `json:"cloud_name"`
		APIKey          string   `json:"api_key"`
		APISecret       string   `json:"api_secret"`
		APIBaseURL      string   `json:"api_base_url"`
		DeliveryBaseURL string   `json:"delivery_base_url"`
		RequestTimeout  Duration `json:"request_timeout"`
	} `json:"object_storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		PublicBaseURL  string   `json:"public_base_url"`
	} `json:"server,omitempty"`

	Workers struct {
		BlacklistPruneInterval Duration `json:"blacklist_prune_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:    j.App.TokenSignKey,
			TokenIssuer:     j.App.TokenIssuer,
			AccessTokenTTL:  time.Duration(j.App.AccessTokenTTL),
			RefreshTokenTTL: time.Duration(j.App.RefreshTokenTTL),
			EmailTokenTTL:   time.Duration(j.App.EmailTokenTTL),
			BcryptCost:      j.App.BcryptCost,
			Version:         j.App.Version,
			LogLevel:        j.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{DSN: j.Storage.DB.DSN},
		},
		Cache: Cache{
			Address:  j.Cache.Address,
			Username: j.Cache.Username,
			Password: j.Cache.Password,
			DB:       j.Cache.DB,
			TLS:      j.Cache.TLS,
			UserTTL:  time.Duration(j.Cache.UserTTL),
		},
		Mail: Mail{
			Host:     j.Mail.Host,
			Port:     j.Mail.Port,
			Username: j.Mail.Username,
			Password: j.Mail.Password,
			From:     j.Mail.From,
			FromName: j.Mail.FromName,
			SSL:      j.Mail.SSL,
		},
		Broker: Broker{
			URL:        j.Broker.URL,
			EmailQueue: j.Broker.EmailQueue,
		},
		ObjectStorage: ObjectStorage{
			CloudName:       j.ObjectStorage.CloudName,
			APIKey:          j.ObjectStorage.APIKey,
			APISecret:       j.ObjectStorage.APISecret,
			APIBaseURL:      j.ObjectStorage.APIBaseURL,
			DeliveryBaseURL: j.ObjectStorage.DeliveryBaseURL,
			RequestTimeout:  time.Duration(j.ObjectStorage.RequestTimeout),
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
			PublicBaseURL:  j.Server.PublicBaseURL,
		},
		Workers: Workers{
			BlacklistPruneInterval: time.Duration(j.Workers.BlacklistPruneInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
