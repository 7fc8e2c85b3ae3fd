package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

var ErrorNoPassword = errors.New(
	"password is not specified and stdin is not a terminal, " +
		"use HIPPO_PASSWORD or the password config parameter",
)

// readPassword prompts for the password without echoing it back.
func readPassword(input *os.File, prompt io.Writer) (string, error) {
	fd := int(input.Fd())
	if !terminal.IsTerminal(fd) {
		return "", ErrorNoPassword
	}

	fmt.Fprint(prompt, "Password: ")
	password, err := terminal.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", err
	}

	return string(password), nil
}
