package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Yandex   YandexConfig   `yaml:"yandex"`
	Telegram TelegramConfig `yaml:"telegram"`
	Engine   EngineConfig   `yaml:"engine"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// YandexConfig holds Yandex Cloud API settings: the AI Studio agents used
// for text analysis and distractor generation, the dictionary and translate
// services, and the IAM service-account credentials.
type YandexConfig struct {
	FolderID string `yaml:"folder_id" env:"YANDEX_FOLDER_ID" env-required:"true"`

	// Service-account key for the IAM token exchange.
	ServiceAccountID string `yaml:"service_account_id" env:"YANDEX_SERVICE_ACCOUNT_ID" env-required:"true"`
	KeyID            string `yaml:"key_id"             env:"YANDEX_KEY_ID"             env-required:"true"`
	PrivateKey       string `yaml:"private_key"        env:"YANDEX_PRIVATE_KEY"        env-required:"true"`

	// AI Studio agent IDs.
	WordsAgentID           string `yaml:"words_agent_id"             env:"YANDEX_WORDS_AGENT_ID"             env-required:"true"`
	PhrasesAgentID         string `yaml:"phrases_agent_id"           env:"YANDEX_PHRASES_AGENT_ID"           env-required:"true"`
	DistractorsEnRuAgentID string `yaml:"distractors_en_ru_agent_id" env:"YANDEX_DISTRACTORS_EN_RU_AGENT_ID" env-required:"true"`
	DistractorsRuEnAgentID string `yaml:"distractors_ru_en_agent_id" env:"YANDEX_DISTRACTORS_RU_EN_AGENT_ID" env-required:"true"`

	GPTEndpoint      string        `yaml:"gpt_endpoint"       env:"YANDEX_GPT_ENDPOINT"       env-default:"https://llm.api.cloud.yandex.net"`
	DictionaryURL    string        `yaml:"dictionary_url"     env:"YANDEX_DICTIONARY_URL"     env-default:"https://dictionary.yandex.net/api/v1/dicservice.json"`
	DictionaryAPIKey string        `yaml:"dictionary_api_key" env:"YANDEX_DICTIONARY_API_KEY"`
	TranslateURL     string        `yaml:"translate_url"      env:"YANDEX_TRANSLATE_URL"      env-default:"https://translate.api.cloud.yandex.net/translate/v2"`
	IAMEndpoint      string        `yaml:"iam_endpoint"       env:"YANDEX_IAM_ENDPOINT"       env-default:"https://iam.api.cloud.yandex.net"`
	AgentTimeout     time.Duration `yaml:"agent_timeout"      env:"YANDEX_AGENT_TIMEOUT"      env-default:"120s"`
	LookupTimeout    time.Duration `yaml:"lookup_timeout"     env:"YANDEX_LOOKUP_TIMEOUT"     env-default:"10s"`
}

// TelegramConfig holds the bot token used to verify Telegram login payloads.
type TelegramConfig struct {
	BotToken       string        `yaml:"bot_token"         env:"TELEGRAM_BOT_TOKEN"         env-required:"true"`
	AuthDateMaxAge time.Duration `yaml:"auth_date_max_age" env:"TELEGRAM_AUTH_DATE_MAX_AGE" env-default:"24h"`
}

// EngineConfig holds learning-engine limits and batch sizes.
type EngineConfig struct {
	TrainingBatchSize int `yaml:"training_batch_size" env:"ENGINE_TRAINING_BATCH_SIZE" env-default:"10"`
	TestBatchSize     int `yaml:"test_batch_size"     env:"ENGINE_TEST_BATCH_SIZE"     env-default:"10"`
	AnalysisMinWords  int `yaml:"analysis_min_words"  env:"ENGINE_ANALYSIS_MIN_WORDS"  env-default:"5"`
	AnalysisMaxChars  int `yaml:"analysis_max_chars"  env:"ENGINE_ANALYSIS_MAX_CHARS"  env-default:"100000"`
	MeaningsPerWord   int `yaml:"meanings_per_word"   env:"ENGINE_MEANINGS_PER_WORD"   env-default:"3"`
}
