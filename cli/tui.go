package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/tui"
)

// TUICommand runs the interactive dashboard in the alternate screen.
func TUICommand(ctx context.Context, c *client.Client) error {
	p := tea.NewProgram(tui.NewModel(ctx, c), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
