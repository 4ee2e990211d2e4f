package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/shiftsync/shiftsync/internal/domain/model"
)

// DescribeRequest carries the shift attributes for which to draft a posting
// description.
type DescribeRequest struct {
	RoleType   model.RoleType
	Location   string
	HourlyRate float64
}

// DescribeShift asks the model for a short posting description businesses can
// edit before publishing.
func (g *Generator) DescribeShift(ctx context.Context, req DescribeRequest) (string, error) {
	return g.GenerateContent(ctx, buildDescribePrompt(req))
}

func buildDescribePrompt(req DescribeRequest) string {
	var b strings.Builder
	b.WriteString("Write a two-sentence job posting description for an event staffing shift.\n")
	b.WriteString("Keep it professional and concrete. Do not invent perks or benefits.\n\n")
	fmt.Fprintf(&b, "Role: %s\n", req.RoleType)
	if strings.TrimSpace(req.Location) != "" {
		fmt.Fprintf(&b, "Location: %s\n", req.Location)
	}
	if req.HourlyRate > 0 {
		fmt.Fprintf(&b, "Hourly rate: $%.2f\n", req.HourlyRate)
	}
	return b.String()
}
