package stack

import (
	"github.com/jrzesz33/civ6_notif/internal/cfn"
	"github.com/jrzesz33/civ6_notif/pkg/config"
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

const (
	// FunctionRuntime is the OS-only runtime for a compiled Go bootstrap.
	FunctionRuntime = "provided.al2023"
	// FunctionHandler is the executable name inside the deployment package.
	FunctionHandler = "bootstrap"

	functionDescription = "Relays Civilization 6 Play By Cloud turn notifications to Discord and SNS."
	functionMemoryMB    = 128
	functionTimeoutSec  = 15
	functionLogLevel    = "INFO"
)

func transformFunction(opts Options) cfn.Function {
	return cfn.Function{
		Description: functionDescription,
		Code: cfn.FunctionCode{
			S3Bucket: opts.CodeBucket,
			S3Key:    opts.CodeKey,
		},
		Handler:       FunctionHandler,
		Role:          roleArn(),
		Runtime:       FunctionRuntime,
		MemorySize:    functionMemoryMB,
		Timeout:       functionTimeoutSec,
		Environment: &cfn.Environment{Variables: map[string]any{
			config.EnvSendToSNS:         intrinsics.Ref{LogicalName: ParamSendToSNS},
			config.EnvSendToDiscord:     intrinsics.Ref{LogicalName: ParamSendToDiscord},
			config.EnvSNSTopicArn:       topicArn(),
			config.EnvDiscordWebhookURL: intrinsics.Ref{LogicalName: ParamDiscordWebhookURL},
			config.EnvLogLevel:          functionLogLevel,
		}},
	}
}

func functionArn() intrinsics.GetAtt {
	return intrinsics.GetAtt{LogicalName: TransformFunction, Attribute: "Arn"}
}

// invokePermission lets API Gateway invoke the function.
func invokePermission() cfn.Permission {
	return cfn.Permission{
		Action:       "lambda:InvokeFunction",
		FunctionName: functionArn(),
		Principal:    "apigateway.amazonaws.com",
	}
}
