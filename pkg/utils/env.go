package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type EnvVars struct {
	Host        string
	Port        int // gRPC server
	APIPort     int // HTTP server
	RabbitHost  string
	RabbitUser  string
	RabbitPass  string
	WorkQueue   string
	ResultQueue string
	Workers     int
	NodeLog     bool
	ServerLog   bool
}

// ReadEnvVars loads the node configuration from the environment.
// An empty RabbitHost disables the queue worker.
func ReadEnvVars() (EnvVars, error) {
	// Loading .env file if it exists
	// It will not override already existing env vars
	_ = godotenv.Load()
	port, err := readIntEnvVarOr("PORT", 50051)
	if err != nil {
		return EnvVars{}, err
	}
	apiPort, err := readIntEnvVarOr("API_PORT", 8080)
	if err != nil {
		return EnvVars{}, err
	}
	workers, err := readIntEnvVarOr("WORKERS", 1)
	if err != nil {
		return EnvVars{}, err
	}
	if workers < 1 {
		return EnvVars{}, fmt.Errorf("WORKERS must be positive, got %d", workers)
	}
	return EnvVars{
		Host:        readStringEnvVarOr("HOST", ""),
		Port:        port,
		APIPort:     apiPort,
		RabbitHost:  readStringEnvVarOr("RABBIT_HOST", ""),
		RabbitUser:  readStringEnvVarOr("RABBIT_USER", "guest"),
		RabbitPass:  readStringEnvVarOr("RABBIT_PASSWORD", "guest"),
		WorkQueue:   readStringEnvVarOr("WORK_QUEUE", "work"),
		ResultQueue: readStringEnvVarOr("RESULT_QUEUE", "result"),
		Workers:     workers,
		NodeLog:     readBoolEnvVarOr("NODE_LOG", false),
		ServerLog:   readBoolEnvVarOr("SERVER_LOG", false),
	}, nil
}

// RabbitURL is the AMQP connection string
func (e EnvVars) RabbitURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:5672/", e.RabbitUser, e.RabbitPass, e.RabbitHost)
}

func readStringEnvVar(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("%s not set", name)
	}
	return value, nil
}

func readStringEnvVarOr(name string, or string) string {
	value, err := readStringEnvVar(name)
	if err != nil {
		value = or
	}
	return value
}

// Missing variables fall back to or; malformed ones are an error
func readIntEnvVarOr(name string, or int) (int, error) {
	valueStr, err := readStringEnvVar(name)
	if err != nil {
		return or, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("could not convert %s to a number: %v", name, err)
	}
	return value, nil
}

func readBoolEnvVarOr(name string, or bool) bool {
	valueStr, err := readStringEnvVar(name)
	if err != nil {
		return or
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return or
	}
	return value
}
