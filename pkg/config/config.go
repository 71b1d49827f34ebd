package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[finledger]"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Exchange configures the outbound currency-rate lookup and its fallback
// behavior. FallbackRate is the static multiplier applied when the rate
// source is unavailable; ReferenceCurrency is the currency every stored
// amount is additionally converted into.
type Exchange struct {
	ApiKey            string        `envconfig:"API_KEY"`
	ApiUrl            string        `envconfig:"API_URL" default:"https://v6.exchangerate-api.com/v6"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	ReferenceCurrency string        `envconfig:"REFERENCE_CURRENCY" default:"INR"`
	FallbackRate      float64       `envconfig:"FALLBACK_RATE" default:"80"`
}

// Upload bounds the CSV batch endpoint.
type Upload struct {
	MaxBytes int64 `envconfig:"MAX_BYTES" default:"1048576"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Exchange  *Exchange  `envconfig:"EXCHANGE"`
	Upload    *Upload    `envconfig:"UPLOAD"`
}
