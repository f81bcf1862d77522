package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MichalMitros/listing-migrator/internal/platform/auth"
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/publisher"
	"github.com/MichalMitros/listing-migrator/internal/reconciler"
	"github.com/MichalMitros/listing-migrator/internal/sellapi"
	"github.com/MichalMitros/listing-migrator/internal/transfer"
	"github.com/MichalMitros/listing-migrator/internal/verifier"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// menuItem is migration step offered to operator. Account is the one which must be authorized first.
type menuItem struct {
	key     string
	label   string
	step    models.Step
	account auth.Role
}

var menu = []menuItem{
	{key: "1", label: "Extract source policies and listings", step: models.StepExtract, account: auth.RoleSource},
	{key: "2", label: "Download images", step: models.StepDownload},
	{key: "3", label: "Sync business policies", step: models.StepPolicies, account: auth.RoleTarget},
	{key: "4", label: "Upload images to target account", step: models.StepUpload, account: auth.RoleTarget},
	{key: "5", label: "Publish listings", step: models.StepPublish, account: auth.RoleTarget},
	{key: "6", label: "Verify migrated listings", step: models.StepVerify, account: auth.RoleTarget},
}

type interactive struct {
	app     *app
	console *console
	logger  *zerolog.Logger
}

// run shows menu until operator quits. Failed steps are reported and menu is shown again.
func (in *interactive) run(ctx context.Context) error {
	for {
		in.console.printf("\n")
		for _, item := range menu {
			in.console.printf("%s) %s\n", item.key, item.label)
		}
		in.console.printf("q) Quit\n")

		choice, err := in.console.ask("Choose step: ")
		if errors.Is(err, errQuit) || choice == "q" {
			return nil
		}
		if err != nil {
			return err
		}

		item, ok := lo.Find(menu, func(item menuItem) bool { return item.key == choice })
		if !ok {
			in.console.printf("Unknown option %q.\n", choice)
			continue
		}

		err = in.runStep(ctx, item)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			in.logger.Error().Err(err).Str("step", string(item.step)).Msg("step failed")
		}
	}
}

func (in *interactive) runStep(ctx context.Context, item menuItem) error {
	if item.account != "" {
		if err := in.authorize(ctx, item.account); err != nil {
			return err
		}
	}

	switch item.step {
	case models.StepExtract:
		summary, err := in.app.pipeline.Extract(ctx)
		if err != nil {
			return err
		}
		in.logger.Info().
			Int("policies", summary.Policies).
			Int32("created", summary.Created).
			Int32("updated", summary.Updated).
			Int32("failed", summary.Failed).
			Msg("extraction finished")
	case models.StepDownload:
		return in.logTransfer(in.app.pipeline.Download(ctx, in.reportTransfer))
	case models.StepUpload:
		return in.logTransfer(in.app.pipeline.Upload(ctx, in.reportTransfer))
	case models.StepPolicies:
		outcomes, err := in.app.pipeline.SyncPolicies(ctx, in.drivePolicies)
		if err != nil {
			return err
		}
		in.logger.Info().Int("processed", len(outcomes)).Msg("policy sync finished")
	case models.StepPublish:
		return in.publish(ctx)
	case models.StepVerify:
		reports, err := in.app.pipeline.Verify(ctx)
		if err != nil {
			return err
		}
		failed := lo.CountBy(reports, func(r verifier.Report) bool { return !r.Passed() })
		in.logger.Info().
			Int("passed", len(reports)-failed).
			Int("failed", failed).
			Msg("verification finished")
	}

	return nil
}

// authorize makes sure account accepts token, asking operator to authorize it again when it doesn't.
func (in *interactive) authorize(ctx context.Context, role auth.Role) error {
	for {
		err := in.app.probe(ctx, role)
		if err == nil {
			return nil
		}

		if !errors.Is(err, sellapi.ErrUnauthorized) && !errors.Is(err, auth.ErrNoToken) {
			return fmt.Errorf("can't check %s account access: %w", role, err)
		}

		in.logger.Warn().Err(err).Str("account", string(role)).Msg("account has to be authorized")
		if err := in.app.session.Forget(role); err != nil {
			return err
		}

		in.console.printf("\nOpen the link below, sign in with the %s account and accept access:\n%s\n",
			role, in.app.session.AuthCodeURL(role))
		input, err := in.console.ask("Paste the redirect URL or code (empty to cancel): ")
		if err != nil {
			return err
		}
		if input == "" {
			return fmt.Errorf("%s account authorization canceled", role)
		}

		if err := in.app.session.Exchange(ctx, role, input); err != nil {
			in.logger.Warn().Err(err).Str("account", string(role)).Msg("can't authorize account")
		}
	}
}

// drivePolicies processes as many policies as operator asks for at a time.
func (in *interactive) drivePolicies(ctx context.Context, cursor *reconciler.Cursor) ([]reconciler.Outcome, error) {
	processed := []reconciler.Outcome{}
	for cursor.Remaining() > 0 {
		next, _ := cursor.Peek()
		in.console.printf("\n%d policies remaining, next: %s policy %q\n", cursor.Remaining(), next.Type, next.Name)

		n, err := in.console.askCount("How many to process? [number/all/q]: ", cursor.Remaining(), true)
		if errors.Is(err, errQuit) {
			return processed, nil
		}
		if err != nil {
			return processed, err
		}

		outcomes, err := cursor.Next(ctx, n)
		processed = append(processed, outcomes...)
		for _, outcome := range outcomes {
			if outcome.Err != nil {
				in.console.printf("  %-9s %s: %v\n", outcome.Action, outcome.Name, outcome.Err)
				continue
			}
			in.console.printf("  %-9s %s -> %s\n", outcome.Action, outcome.Name, outcome.TargetID)
		}
		if err != nil {
			return processed, err
		}
	}

	return processed, nil
}

func (in *interactive) publish(ctx context.Context) error {
	pending, err := in.app.publisher.Pending(ctx)
	if err != nil {
		return err
	}
	if pending == 0 {
		in.logger.Info().Msg("no listings left to publish")
		return nil
	}

	limit, err := in.console.askCount(fmt.Sprintf("%d listings pending. How many to publish? [number/all]: ", pending), pending, false)
	if err != nil {
		return err
	}

	summary, err := in.app.pipeline.Publish(ctx, limit)
	var haltErr *publisher.HaltError
	if errors.As(err, &haltErr) {
		in.console.printf("\nPublishing stopped at %s (%s): %v\nFix the listing and publish again to resume.\n",
			haltErr.SKU, haltErr.Step, haltErr.Cause)
	}
	if err != nil {
		return err
	}

	in.logger.Info().
		Int("published", summary.Published).
		Int("remaining", summary.Remaining).
		Msg("publishing finished")

	return nil
}

func (in *interactive) reportTransfer(result transfer.Result) {
	in.console.printf("  [%s] image %d: %s\n", result.Status, result.ImageID, result.Message)
}

func (in *interactive) logTransfer(summary transfer.Summary, err error) error {
	if err != nil {
		return err
	}

	in.logger.Info().
		Int("total", summary.Total).
		Int("done", summary.Done).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Msg("image transfer finished")

	return nil
}
