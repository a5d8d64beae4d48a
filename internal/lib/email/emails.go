package email

import "context"

// SendWelcomeEmail greets a newly created user and tells them how many
// chats they start with.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, name, userID string, remainingChats int) error {
	data := map[string]any{
		"Name":           name,
		"UserID":         userID,
		"RemainingChats": remainingChats,
	}

	return c.SendEmail(ctx, to, "Welcome to Userapi!", TemplateWelcome, data)
}
