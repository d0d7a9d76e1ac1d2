package global

import (
	"crypto/ed25519"

	"github.com/go-redis/redis_rate/v10"
	cfg "github.com/mailio/go-web3-kit/config"
)

// Conf global config
var Conf Config

// Server signing keys (loaded from serverKeysPath in conf.yaml), used for
// minting and verifying admin API JWS tokens
var PublicKey ed25519.PublicKey
var PrivateKey ed25519.PrivateKey
var ServerKeysCreated int64

// Global rate limiter
var RateLimiter *redis_rate.Limiter

type Config struct {
	cfg.YamlConfig `yaml:",inline"`
	CouchDB        CouchDBConfig      `yaml:"couchdb"`
	Alias          AliasConfig        `yaml:"alias"`
	Prometheus     PrometheusConfig   `yaml:"prometheus"`
	Redis          RedisConfig        `yaml:"redis"`
	Queue          QueueConfig        `yaml:"queue"`
	Forwarders     []*ForwarderConfig `yaml:"forwarders"`
	Storage        StorageConfig      `yaml:"storage"`
	Statistics     StatisticsConfig   `yaml:"statistics"`
}

type CouchDBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Scheme   string `yaml:"scheme"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// AliasConfig configures the alias scheme itself
type AliasConfig struct {
	// Domains this server creates and validates aliases for
	Domains []string `yaml:"domains"`
	// HashLength is the total signature segment length in hex characters
	// (key hint included); 0 means the scheme default of 8
	HashLength     int    `yaml:"hashLength"`
	ServerKeysPath string `yaml:"serverKeysPath"`
}

type PrometheusConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	Username string `yaml:"username"`
}

type QueueConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// ForwarderConfig describes one ESP used to deliver validated mail and
// to receive inbound mail over its webhook
type ForwarderConfig struct {
	Provider   string `yaml:"provider"`
	Webhookurl string `yaml:"webhookurl"`
	Webhookkey string `yaml:"webhookkey"`
	ApiBaseUrl string `yaml:"apibaseurl"`
	SendApiKey string `yaml:"sendapikey"`
	Domain     string `yaml:"domain"`
}

// StorageConfig configures the S3 bucket for key-ring backups; backups
// are disabled when Bucket is empty
type StorageConfig struct {
	Key    string `yaml:"key"`
	Secret string `yaml:"secret"`
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
}

type StatisticsConfig struct {
	// FlushMinutes is the interval for flushing redis counters to CouchDB
	FlushMinutes int `yaml:"flushMinutes"`
	// BackupHours is the interval for key-ring backups to S3
	BackupHours int `yaml:"backupHours"`
}
