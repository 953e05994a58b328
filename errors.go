/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Rejection reasons for game operations. All are recoverable and are
// reported, at most, to the offending client.
var (
	errGameNotFound    = errors.New("game not found")
	errUnauthorized    = errors.New("not a participant")
	errInvalidState    = errors.New("not valid in the current game state")
	errAlreadyAnswered = errors.New("already answered this round")
	errAlreadyBound    = errors.New("already in a game")
)

// joinErrorText maps a join rejection to its user-facing message.
func joinErrorText(err error) string {
	switch {
	case errors.Is(err, errGameNotFound):
		return "Game PIN not found."
	case errors.Is(err, errInvalidState):
		return "Game has already started."
	case errors.Is(err, errAlreadyBound):
		return "You are already in a game."
	}

	return "Unable to join."
}

// answerErrorText maps an answer rejection to its user-facing message.
func answerErrorText(err error) string {
	switch {
	case errors.Is(err, errGameNotFound):
		return "Game PIN not found."
	case errors.Is(err, errUnauthorized):
		return "You are not in this game."
	case errors.Is(err, errInvalidState):
		return "Too late or wrong question!"
	case errors.Is(err, errAlreadyAnswered):
		return "You already answered!"
	}

	return "Unable to record answer."
}

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
