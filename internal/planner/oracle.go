package planner

import (
	"context"
	"fmt"

	"github.com/ameliedv/moodflow/internal/llm"
)

// ProposalOracle turns a planning context into a raw schedule proposal.
// The oracle is opaque: it may fail upstream or return malformed text,
// and the reconciler is responsible for validating whatever comes back.
// Isolating it behind this port lets reconciliation be tested with
// synthetic proposals, malformed ones included, without a live model.
type ProposalOracle interface {
	Propose(ctx context.Context, pctx PlanningContext) (string, error)
}

type llmOracle struct {
	client llm.Client
}

// NewLLMOracle adapts a generation client into a ProposalOracle.
func NewLLMOracle(client llm.Client) ProposalOracle {
	return &llmOracle{client: client}
}

func (o *llmOracle) Propose(ctx context.Context, pctx PlanningContext) (string, error) {
	resp, err := o.client.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: planSystemPrompt,
		UserPrompt:   buildPlanPrompt(pctx),
	})
	if err != nil {
		return "", fmt.Errorf("proposing schedule: %w", err)
	}
	return resp.Text, nil
}
