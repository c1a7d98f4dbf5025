package config

import "os"

type Config struct {
	Host                    string
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	MongoURI                string
	MongoDB                 string
	ServiceName             string
}

func Load() *Config {
	return &Config{
		Host:                    getEnv("HOST", "0.0.0.0"),
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDB:                 getEnv("MONGO_DB", "placepulse"),
		ServiceName:             getEnv("SERVICE_NAME", "notification-relay"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
