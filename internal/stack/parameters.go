package stack

import "github.com/jrzesz33/civ6_notif/internal/cfn"

// Boolean switches are passed to the function as the strings True or False.
var flagValues = []string{"True", "False"}

const (
	sendToSNSDescription = "Enabling this will tell the lambda function to send messages to an SNS topic. " +
		"This can be useful if you want to receive text message or email notifications from the games. " +
		"For new users of SNS, this setting is free. " +
		"For existing SNS users, this setting may raise your AWS bill by <$1.00 a month."
	sendToDiscordDescription = "Enabling this will tell the lambda function to send messages to a Discord Webhook URL."
	webhookURLDescription    = "Please paste here the URL that Discord provided to you when you created your server's Webhook."
)

func addParameters(t *cfn.Template) error {
	params := []struct {
		name  string
		param cfn.Parameter
	}{
		{ParamSendToSNS, cfn.Parameter{
			Type:          "String",
			Description:   sendToSNSDescription,
			AllowedValues: flagValues,
			Default:       "False",
		}},
		{ParamSendToDiscord, cfn.Parameter{
			Type:          "String",
			Description:   sendToDiscordDescription,
			AllowedValues: flagValues,
			Default:       "False",
		}},
		{ParamDiscordWebhookURL, cfn.Parameter{
			Type:        "String",
			Description: webhookURLDescription,
			NoEcho:      true,
		}},
	}
	for _, p := range params {
		if err := t.AddParameter(p.name, p.param); err != nil {
			return err
		}
	}
	return nil
}
