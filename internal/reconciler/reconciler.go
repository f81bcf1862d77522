package reconciler

import (
	"context"
	"errors"
	"fmt"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/rawdoc"
	"github.com/MichalMitros/listing-migrator/internal/sellapi"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name PolicyAPI --filename policy_api.go
//go:generate mockery --name Storage --filename storage.go

// PolicyAPI manages business policies of target account.
type PolicyAPI interface {
	ListPolicies(ctx context.Context, policyType models.PolicyType) ([]map[string]any, error)
	CreatePolicy(ctx context.Context, policyType models.PolicyType, payload map[string]any) (string, error)
	UpdatePolicy(ctx context.Context, policyType models.PolicyType, id string, payload map[string]any) error
}

// Storage is source policies storage.
type Storage interface {
	PoliciesByType(ctx context.Context, policyType models.PolicyType) ([]models.SourcePolicy, error)
	SetPolicyTargetID(ctx context.Context, id int, targetID string) error
}

// Action is decision taken for single source policy.
type Action string

// Reconciliation actions.
const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionDuplicate Action = "duplicate"
	ActionSkipped   Action = "skipped"
)

// Outcome is result of reconciling single source policy.
type Outcome struct {
	Policy   models.SourcePolicy
	Name     string
	Action   Action
	TargetID string
	Err      error
}

// Reconciler maps source account policies onto target account policies.
type Reconciler struct {
	api     PolicyAPI
	storage Storage
	logger  *zerolog.Logger
}

// NewReconciler returns new Reconciler.
func NewReconciler(api PolicyAPI, storage Storage, logger *zerolog.Logger) *Reconciler {
	return &Reconciler{
		api:     api,
		storage: storage,
		logger:  logger,
	}
}

// Start returns Cursor over all stored source policies in migration order.
func (r *Reconciler) Start(ctx context.Context) (*Cursor, error) {
	pending := []models.SourcePolicy{}
	for _, policyType := range models.PolicyTypes {
		policies, err := r.storage.PoliciesByType(ctx, policyType)
		if err != nil {
			return nil, fmt.Errorf("can't get %s policies: %w", policyType, err)
		}
		pending = append(pending, policies...)
	}

	return &Cursor{
		reconciler: r,
		pending:    pending,
		targets:    map[models.PolicyType]map[string]string{},
	}, nil
}

// Cursor walks source policies. Caller decides how many policies are processed at once.
// Cursor is not safe for concurrent use.
type Cursor struct {
	reconciler *Reconciler
	pending    []models.SourcePolicy
	done       int
	// targets maps target policy names to IDs per policy type.
	targets map[models.PolicyType]map[string]string
}

// Remaining returns number of policies not processed yet.
func (c *Cursor) Remaining() int {
	return len(c.pending)
}

// Processed returns number of policies processed so far.
func (c *Cursor) Processed() int {
	return c.done
}

// Peek returns next policy to process.
func (c *Cursor) Peek() (models.SourcePolicy, bool) {
	if len(c.pending) == 0 {
		return models.SourcePolicy{}, false
	}
	return c.pending[0], true
}

// Next processes up to n following policies.
// Failures of single policy are reported in outcomes, returned error means processing can't continue.
func (c *Cursor) Next(ctx context.Context, n int) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, min(n, len(c.pending)))

	for len(outcomes) < n && len(c.pending) > 0 {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		outcome, err := c.reconcile(ctx, c.pending[0])
		if err != nil {
			return outcomes, err
		}

		c.pending = c.pending[1:]
		c.done++
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// All processes all remaining policies.
func (c *Cursor) All(ctx context.Context) ([]Outcome, error) {
	return c.Next(ctx, len(c.pending))
}

func (c *Cursor) reconcile(ctx context.Context, policy models.SourcePolicy) (Outcome, error) {
	targets, err := c.targetPolicies(ctx, policy.Type)
	if err != nil {
		return Outcome{}, err
	}

	payload := Sanitize(policy)
	outcome := Outcome{
		Policy: policy,
		Name:   MigratedName(policy.Name),
	}

	if targetID, ok := targets[outcome.Name]; ok {
		err = c.reconciler.api.UpdatePolicy(ctx, policy.Type, targetID, payload)
		outcome.TargetID, outcome.Action = targetID, ActionUpdated
	} else {
		outcome.TargetID, err = c.reconciler.api.CreatePolicy(ctx, policy.Type, payload)
		outcome.Action = ActionCreated

		var apiErr *sellapi.APIError
		if errors.As(err, &apiErr) && apiErr.IsDuplicatePolicy() {
			if duplicateID, ok := apiErr.DuplicatePolicyID(); ok {
				outcome.TargetID, outcome.Action, err = duplicateID, ActionDuplicate, nil
			}
		}
	}

	logger := c.reconciler.logger.With().
		Str("policyType", string(policy.Type)).
		Str("policy", outcome.Name).
		Logger()

	if err != nil {
		outcome.Action, outcome.TargetID, outcome.Err = ActionSkipped, "", err
		logger.Warn().Err(err).Msg("can't reconcile policy, skipping")
		return outcome, nil
	}

	if err := c.reconciler.storage.SetPolicyTargetID(ctx, policy.ID, outcome.TargetID); err != nil {
		return Outcome{}, fmt.Errorf("can't save target ID of policy %s: %w", policy.PolicyID, err)
	}
	targets[outcome.Name] = outcome.TargetID

	logger.Info().Str("targetId", outcome.TargetID).Str("action", string(outcome.Action)).Msg("policy reconciled")

	return outcome, nil
}

// targetPolicies returns target policy IDs by name, listing them once per type.
func (c *Cursor) targetPolicies(ctx context.Context, policyType models.PolicyType) (map[string]string, error) {
	if targets, ok := c.targets[policyType]; ok {
		return targets, nil
	}

	policies, err := c.reconciler.api.ListPolicies(ctx, policyType)
	if err != nil {
		return nil, fmt.Errorf("can't list target %s policies: %w", policyType, err)
	}

	targets := make(map[string]string, len(policies))
	lo.ForEach(policies, func(policy map[string]any, _ int) {
		name, hasName := rawdoc.Text(policy["name"])
		id, hasID := rawdoc.Text(policy[policyType.IDKey()])
		if hasName && hasID {
			targets[name] = id
		}
	})
	c.targets[policyType] = targets

	return targets, nil
}
