// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command folioctl provisions the administrator credentials read by
// folioadmin from the environment.
//
//	folioctl hash [password]        print a bcrypt hash for ADMIN_PASSWORD_HASH
//	folioctl totp <email> [qr.png]  print a fresh ADMIN_TOTP_SECRET
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"folioadmin/internal/auth"
)

const usage = `usage:
  folioctl hash [password]        bcrypt hash for ADMIN_PASSWORD_HASH (reads stdin if omitted)
  folioctl totp <email> [qr.png]  new ADMIN_TOTP_SECRET, optionally writing the QR code
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "hash":
		err = hashCmd(args[1:], stdin, stdout)
	case "totp":
		err = totpCmd(args[1:], stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "folioctl %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func hashCmd(args []string, stdin io.Reader, stdout io.Writer) error {
	var password string
	switch len(args) {
	case 0:
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	case 1:
		password = args[0]
	default:
		return errors.New("expected at most one password argument")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hash)
	return nil
}

func totpCmd(args []string, stdout io.Writer) error {
	if len(args) == 0 || len(args) > 2 {
		return errors.New("expected <email> [qr.png]")
	}
	account := strings.TrimSpace(args[0])
	if account == "" {
		return errors.New("email is empty")
	}

	enrollment, png, err := auth.GenerateTOTP(account)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "ADMIN_TOTP_SECRET=%s\n", enrollment.Secret)
	fmt.Fprintf(stdout, "otpauth URL: %s\n", enrollment.URL)

	if len(args) == 2 {
		if err := os.WriteFile(args[1], png, 0o600); err != nil {
			return fmt.Errorf("write qr code: %w", err)
		}
		fmt.Fprintf(stdout, "QR code written to %s\n", args[1])
	}
	return nil
}
