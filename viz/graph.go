// ABOUTME: Engagement graph generation using go-graphviz
// ABOUTME: Groups contacts under their staleness tier and colours them by tier
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/connecthub/models"
)

type tierStyle struct {
	label string
	color string
}

var tierStyles = map[models.StalenessTier]tierStyle{
	models.TierFresh:    {label: "Fresh\n(≤30 days)", color: "palegreen"},
	models.TierWarning:  {label: "Warning\n(31-90 days)", color: "khaki"},
	models.TierCritical: {label: "Critical\n(91+ days)", color: "lightcoral"},
	models.TierUnknown:  {label: "No contact", color: "lightgray"},
}

var tierOrder = []models.StalenessTier{
	models.TierFresh,
	models.TierWarning,
	models.TierCritical,
	models.TierUnknown,
}

// GenerateEngagementGraph renders one node per staleness tier and one node per
// contact, each contact linked to its tier. The result is XDOT source.
func GenerateEngagementGraph(ctx context.Context, engagements []models.ContactEngagement) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel("Contact Engagement")
	graph.SetRankDir(cgraph.LRRank)

	tierNodes := make(map[models.StalenessTier]*cgraph.Node)
	for _, tier := range tierOrder {
		style := tierStyles[tier]
		node, err := graph.CreateNodeByName("tier_" + string(tier))
		if err != nil {
			return "", fmt.Errorf("failed to create tier node: %w", err)
		}
		node.SetLabel(style.label)
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor(style.color)
		tierNodes[tier] = node
	}

	for _, e := range engagements {
		node, err := graph.CreateNodeByName("contact_" + e.Contact.ID)
		if err != nil {
			return "", fmt.Errorf("failed to create contact node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s", e.Contact.Name, e.Summary.BadgeLabel()))
		node.SetShape("ellipse")
		node.SetStyle("filled")
		node.SetFillColor(tierStyles[e.Summary.Tier].color)

		tierNode, ok := tierNodes[e.Summary.Tier]
		if !ok {
			tierNode = tierNodes[models.TierUnknown]
		}
		if _, err := graph.CreateEdgeByName("tier_"+e.Contact.ID, tierNode, node); err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}
