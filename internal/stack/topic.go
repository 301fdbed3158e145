package stack

import (
	"github.com/jrzesz33/civ6_notif/internal/cfn"
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

// TopicDisplayName is the sender name shown to email and SMS subscribers.
const TopicDisplayName = "Civ6Notification"

func topic() cfn.Topic {
	return cfn.Topic{DisplayName: TopicDisplayName}
}

// topicArn assembles the topic ARN from the region, account and generated
// topic name.
func topicArn() intrinsics.Join {
	return intrinsics.Join{
		Delimiter: "",
		Values: []any{
			"arn:aws:sns:",
			intrinsics.AWS_REGION,
			":",
			intrinsics.AWS_ACCOUNT_ID,
			":",
			intrinsics.GetAtt{LogicalName: NotificationTopic, Attribute: "TopicName"},
		},
	}
}
