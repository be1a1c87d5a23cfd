package game

import (
	"context"
	"errors"
	"log"
	"strings"
)

type publicError interface {
	error
	Public() bool
}

// UserMessage turns an error from any game service into text a player can
// see. Errors that are not marked public are logged and replaced.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var public publicError
	if errors.As(err, &public) && public.Public() {
		// Wrappers that only add detail (names, IDs) are kept
		if !strings.HasPrefix(err.Error(), "failed to") {
			return capitalize(err.Error())
		}
		return capitalize(public.Error())
	}

	switch {
	case errors.Is(err, context.Canceled):
		return "Request cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "The game took too long to answer. Please try again."
	}

	log.Printf("Unhandled error: %v", err)
	return genericMessage
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
