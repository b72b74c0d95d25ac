// Command signup submits one launch signup through the same form logic the
// landing page uses. It exits non-zero when the form ends in an error state.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/cluemart-landing/internal/models"
	"github.com/Nazarious-ucu/cluemart-landing/internal/signup"
)

func main() {
	endpoint := flag.String("url", "http://localhost:8080/api/subscribe", "subscribe endpoint")
	email := flag.String("email", "", "email address to sign up")
	role := flag.String("role", "", "stallholder, organiser or visitor")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	verbose := flag.Bool("v", false, "log request details")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	ctrl := signup.NewController(*endpoint, &http.Client{Timeout: *timeout}, l)
	ctrl.SetEmail(*email)
	if *role != "" {
		if err := ctrl.SelectRole(models.ParseSource(*role)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid -role %q: %v\n", *role, err)
			os.Exit(2)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	st := ctrl.Submit(ctx)
	cancel()

	fmt.Println(st.Message)
	if st.Status != signup.StatusSuccess {
		os.Exit(1)
	}
}
