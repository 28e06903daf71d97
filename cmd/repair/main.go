// Command repair re-syncs group and class channel thread participants
// with the current roster. Participant lists are snapshots taken at
// thread creation, so membership changes only reach a thread when this
// tool runs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/benedekkincses/edu-bridge-sub000/config"
	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	class_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/class"
	thread_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/thread"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appState, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer appState.Close()

	threads := thread_repo.NewThreadRepo(appState)
	classes := class_repo.NewClassRepo(appState)

	list, appErr := threads.ListSnapshotThreads(ctx)
	if appErr != nil {
		log.Fatal().Str("error", appErr.Message).Msg("failed to list threads")
	}

	var repaired, added int64
	for _, thread := range list {
		var memberIDs []string
		switch {
		case thread.Kind == entity.ThreadKindGroup && thread.GroupID != nil:
			memberIDs, appErr = classes.ListGroupMemberIDs(ctx, *thread.GroupID)
		case thread.Kind == entity.ThreadKindClassChannel && thread.ClassID != nil:
			memberIDs, appErr = classes.ListClassMemberIDs(ctx, *thread.ClassID)
		default:
			log.Warn().Str("thread_id", thread.ID.String()).Msg("thread has no backing group or class, skipping")
			continue
		}
		if appErr != nil {
			log.Error().Str("thread_id", thread.ID.String()).Str("error", appErr.Message).Msg("failed to load roster")
			continue
		}

		n, appErr := threads.InsertMissingParticipants(ctx, thread.ID, memberIDs)
		if appErr != nil {
			log.Error().Str("thread_id", thread.ID.String()).Str("error", appErr.Message).Msg("failed to insert participants")
			continue
		}
		if n > 0 {
			log.Info().Str("thread_id", thread.ID.String()).Int64("added", n).Msg("participants added")
			repaired++
			added += n
		}
	}

	log.Info().
		Int("threads_checked", len(list)).
		Int64("threads_repaired", repaired).
		Int64("participants_added", added).
		Msg("participant repair complete")
}
