// Package stack declares the Civ6 notification relay: a REST endpoint that
// hands each turn notification to a Lambda function, which forwards it to a
// Discord webhook and an SNS topic.
package stack

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jrzesz33/civ6_notif/internal/cfn"
)

// Logical names of the template entries.
const (
	ParamSendToSNS         = "SendToSNS"
	ParamSendToDiscord     = "SendToDiscord"
	ParamDiscordWebhookURL = "DiscordWebhookURL"

	Gateway           = "Civ6NotifGW"
	ExecutionRole     = "Civ6NotifLambdaExecutionRole"
	RolePolicy        = "Civ6NotifRolePolicy"
	NotificationTopic = "Civ6NotifTopic"
	TransformFunction = "Civ6NotifFunction"
	InvokePermission  = "Civ6LambdaPermission"
	NotifyResource    = "Civ6NotifResource"
	PostMethod        = "Civ6NotifPostMethod"

	OutputTopicArn = "SNSTopicArn"
	OutputEndpoint = "ApiGatewayEndpoint"
)

// Description is the template description.
const Description = "AWS CloudFormation template to spin up an API Gateway, Lambda function, " +
	"and SNS topic to receive, transform, and retransmit Civilization 6 Play By Cloud notifications."

// Defaults applied to a zero Options.
const (
	DefaultStageName  = "prod"
	DefaultPathPart   = "civ6"
	DefaultCodeBucket = "civ6-notif-artifacts"
	DefaultCodeKey    = "relay.zip"
)

// Options are the generator-time inputs. Empty fields take the defaults.
type Options struct {
	StageName  string
	PathPart   string
	CodeBucket string
	CodeKey    string
}

func (o Options) withDefaults() Options {
	if o.StageName == "" {
		o.StageName = DefaultStageName
	}
	if o.PathPart == "" {
		o.PathPart = DefaultPathPart
	}
	if o.CodeBucket == "" {
		o.CodeBucket = DefaultCodeBucket
	}
	if o.CodeKey == "" {
		o.CodeKey = DefaultCodeKey
	}
	return o
}

// DeploymentName returns the logical name of the deployment for a stage.
func DeploymentName(stageName string) string { return stageName + "Deployment" }

// StageResourceName returns the logical name of the stage resource.
func StageResourceName(stageName string) string { return stageName + "Stage" }

var (
	alphanumeric = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	pathPart     = regexp.MustCompile(`^[A-Za-z0-9._~-]+$`)
)

// Validate checks that the stage name can prefix logical names and the path
// part is a single URL segment.
func (o Options) Validate() error {
	o = o.withDefaults()
	var errs []error
	if !alphanumeric.MatchString(o.StageName) {
		errs = append(errs, fmt.Errorf("stage name %q must be alphanumeric", o.StageName))
	}
	if !pathPart.MatchString(o.PathPart) {
		errs = append(errs, fmt.Errorf("path part %q must be a single path segment", o.PathPart))
	}
	return errors.Join(errs...)
}

func (o Options) deploymentName() string { return DeploymentName(o.StageName) }

// Build assembles the relay template.
func Build(opts Options) (*cfn.Template, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	t := cfn.New(Description)

	if err := addParameters(t); err != nil {
		return nil, fmt.Errorf("adding parameters: %w", err)
	}

	resources := []struct {
		name      string
		res       cfn.Resource
		dependsOn []string
	}{
		{Gateway, restAPI(), nil},
		{NotificationTopic, topic(), nil},
		{ExecutionRole, executionRole(), nil},
		{RolePolicy, rolePolicy(), nil},
		{TransformFunction, transformFunction(opts), nil},
		{InvokePermission, invokePermission(), nil},
		{NotifyResource, notifyResource(opts), nil},
		{PostMethod, postMethod(), []string{TransformFunction}},
		{StageResourceName(opts.StageName), stage(opts), nil},
		{opts.deploymentName(), deployment(), []string{PostMethod}},
	}
	for _, r := range resources {
		if err := t.AddResource(r.name, r.res, r.dependsOn...); err != nil {
			return nil, fmt.Errorf("adding resource: %w", err)
		}
	}

	outputs := []struct {
		name string
		out  cfn.Output
	}{
		{OutputTopicArn, cfn.Output{
			Description: "Arn of the SNS topic to subscribe to.",
			Value:       topicArn(),
		}},
		{OutputEndpoint, cfn.Output{
			Description: "URL to give to Civ6's settings.",
			Value:       endpointURL(opts),
		}},
	}
	for _, o := range outputs {
		if err := t.AddOutput(o.name, o.out); err != nil {
			return nil, fmt.Errorf("adding output: %w", err)
		}
	}
	return t, nil
}
