// Command inspect prints the students stored in the configured database.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/noah-isme/tutoring-api/internal/config"
	"github.com/noah-isme/tutoring-api/internal/database"
	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/repository"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	dsn := pflag.String("database-url", config.DatabaseURL(), "database DSN (sqlite file: or postgres://)")
	timeout := pflag.Duration("timeout", 10*time.Second, "query timeout")
	pflag.Parse()

	db, err := database.Connect(*dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() { _ = database.Close(db) }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	students, err := repository.NewStudentRepository(db).List(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to list students")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATUS\tENROLLED")
	for _, student := range students {
		email := "-"
		if student.Email != nil {
			email = *student.Email
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", student.ID, student.Name, email, student.Status, dto.FormatDate(student.EnrollmentDate))
	}
	if err := w.Flush(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write output")
	}

	logger.Info().Int("count", len(students)).Msg("students listed")
}
