package utils

import (
	"fmt"
	"log"
)

var nodeLog bool
var serverLog bool

func InitLog(node, server bool) {
	nodeLog = node
	serverLog = server
}

func ServerLog(format string, v ...any) {
	if serverLog {
		log.Printf("INFO Server: %s", fmt.Sprintf(format, v...))
	}
}

// NodeLog traces the computation (solver sweeps, sampler walks, queue jobs)
func NodeLog(role string, format string, v ...any) {
	if nodeLog {
		log.Printf("INFO Compute %s: %s", role, fmt.Sprintf(format, v...))
	}
}

func WarnLog(role string, format string, v ...any) {
	log.Printf("WARN %s: %s", role, fmt.Sprintf(format, v...))
}

func FailOnError(msg string, err error, v ...any) {
	if err != nil {
		log.Panicf("%s: %v", fmt.Sprintf(msg, v...), err)
	}
}
