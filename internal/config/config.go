package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
    "time"     // time parses the TTL durations
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for costs,
// durations for the ephemeral-store TTLs.
type Config struct {
    Env             string        // application environment (e.g. "dev", "prod")
    Port            string        // HTTP port to listen on
    DBUser          string        // database username
    DBPass          string        // database password (optional)
    DBHost          string        // database host address
    DBPort          string        // database port number
    DBName          string        // database name
    JWTSecret       string        // secret used to sign tokens
    AccessTTLMin    int           // access token time-to-live in minutes
    BcryptCost      int           // bcrypt cost for password hashing
    BaseURL         string        // public base URL used in confirmation links
    ConfirmTokenTTL time.Duration // lifetime of stored email-confirmation tokens
    ResetCodeTTL    time.Duration // lifetime of password-reset codes
    PendingTTL      time.Duration // lifetime of pending unregistered-user comments
    AdminEmail      string        // seeded administrator email (optional)
    AdminPassword   string        // seeded administrator password (optional)
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. The TTLs default to
// the documented values (24h confirmation, 15m reset, 30m pending).
func Load() Config {
    return Config{
        Env:             must("APP_ENV"),                 // environment (dev/test/prod)
        Port:            must("APP_PORT"),                // port to bind the HTTP server
        DBUser:          must("DB_USER"),                 // database user
        DBPass:          os.Getenv("DB_PASS"),            // database password (empty allowed)
        DBHost:          must("DB_HOST"),                 // database host
        DBPort:          must("DB_PORT"),                 // database port
        DBName:          must("DB_NAME"),                 // database name
        JWTSecret:       must("JWT_SECRET"),              // secret used for signing tokens
        AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"), // TTL for access tokens in minutes
        BcryptCost:      mustInt("BCRYPT_COST"),          // bcrypt cost factor
        BaseURL:         envStr("BASE_URL", "http://localhost:8080"),
        ConfirmTokenTTL: envDur("CONFIRM_TOKEN_TTL", 24*time.Hour),
        ResetCodeTTL:    envDur("RESET_CODE_TTL", 15*time.Minute),
        PendingTTL:      envDur("PENDING_COMMENT_TTL", 30*time.Minute),
        AdminEmail:      os.Getenv("ADMIN_EMAIL"),
        AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
    }
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    return d
}
