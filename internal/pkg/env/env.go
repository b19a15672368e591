package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Env holds the values read from the .env file. OS environment variables
// take effect as a fallback, so containerized deployments can run without
// a file at all.
var Env map[string]string

// GetEnv returns the value for key, preferring the .env file over the OS
// environment, or def when neither is set.
func GetEnv(key, def string) string {
	if val, ok := Env[key]; ok {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the first .env file found walking up from the binary's
// working directory. Missing files are not an error.
func SetupEnvFile() {
	candidates := []string{
		".env",
		"../../.env",
		"../../../.env",
	}

	for _, path := range candidates {
		values, err := godotenv.Read(path)
		if err != nil {
			continue
		}
		Env = values
		return
	}

	log.Println("No .env file found, using OS environment only")
	Env = map[string]string{}
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
