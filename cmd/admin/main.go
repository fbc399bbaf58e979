package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"pokerverse-server/pkg/account"
)

var command = flag.String("c", "user", "specifies the command (user)")

func main() {
	flag.Parse()

	switch *command {
	case "user":
		username, err := getInput("Username")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		if username == "" {
			os.Exit(1)
		}

		email := getEmail()
		if email == "" {
			os.Exit(1)
		}

		password := getPassword()
		if password == "" {
			os.Exit(1)
		}

		user, err := account.CreateUser(context.Background(), username, email, password)
		if err != nil {
			logrus.WithError(err).Fatal("could not create user")
		}

		fmt.Printf("Created user %d with %d chips\n", user.ID, user.Chips)

	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func getPassword() string {
	for {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(0)
		if err != nil {
			continue
		}
		fmt.Println("")

		password := strings.TrimRight(string(pwBytes), "\r\n")

		if password == "" {
			return ""
		}

		if len(password) < 6 {
			_, _ = fmt.Fprintf(os.Stderr, "password must be 6 or more characters\n")
			continue
		}

		return password
	}
}

func getEmail() string {
	for {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		str, err := reader.ReadString('\n')
		if err != nil {
			logrus.WithError(err).Warn("could not read email")
		}

		str = strings.TrimRight(str, "\r\n")

		if str == "" {
			return ""
		}

		if err := checkmail.ValidateFormat(str); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			continue
		}

		return str
	}
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
