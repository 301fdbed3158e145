package cfn

import "encoding/json"

// Property fields typed as any accept literals or intrinsic functions.

// RestAPI is AWS::ApiGateway::RestApi.
type RestAPI struct {
	Name        any    `json:"Name,omitempty"`
	Description string `json:"Description,omitempty"`
}

func (RestAPI) ResourceType() string { return "AWS::ApiGateway::RestApi" }

// APIResource is AWS::ApiGateway::Resource, one path segment of a REST API.
type APIResource struct {
	RestApiId any    `json:"RestApiId"`
	ParentId  any    `json:"ParentId"`
	PathPart  string `json:"PathPart"`
}

func (APIResource) ResourceType() string { return "AWS::ApiGateway::Resource" }

// Method is AWS::ApiGateway::Method.
type Method struct {
	RestApiId         any              `json:"RestApiId"`
	ResourceId        any              `json:"ResourceId"`
	HttpMethod        string           `json:"HttpMethod"`
	AuthorizationType string           `json:"AuthorizationType"`
	Integration       *Integration     `json:"Integration,omitempty"`
	MethodResponses   []MethodResponse `json:"MethodResponses,omitempty"`
}

func (Method) ResourceType() string { return "AWS::ApiGateway::Method" }

// Integration binds a method to its backend.
type Integration struct {
	Type                  string                `json:"Type"`
	IntegrationHttpMethod string                `json:"IntegrationHttpMethod,omitempty"`
	Credentials           any                   `json:"Credentials,omitempty"`
	Uri                   any                   `json:"Uri,omitempty"`
	IntegrationResponses  []IntegrationResponse `json:"IntegrationResponses,omitempty"`
}

// IntegrationResponse maps a backend status to the method response.
type IntegrationResponse struct {
	StatusCode string `json:"StatusCode"`
}

// MethodResponse declares a status code the method can return.
type MethodResponse struct {
	StatusCode string `json:"StatusCode"`
}

// Deployment is AWS::ApiGateway::Deployment, a snapshot of a REST API.
type Deployment struct {
	RestApiId   any    `json:"RestApiId"`
	Description string `json:"Description,omitempty"`
}

func (Deployment) ResourceType() string { return "AWS::ApiGateway::Deployment" }

// Stage is AWS::ApiGateway::Stage.
type Stage struct {
	StageName    string `json:"StageName"`
	RestApiId    any    `json:"RestApiId"`
	DeploymentId any    `json:"DeploymentId"`
}

func (Stage) ResourceType() string { return "AWS::ApiGateway::Stage" }

// Role is AWS::IAM::Role.
type Role struct {
	Path                     string         `json:"Path,omitempty"`
	AssumeRolePolicyDocument PolicyDocument `json:"AssumeRolePolicyDocument"`
}

func (Role) ResourceType() string { return "AWS::IAM::Role" }

// Policy is AWS::IAM::Policy, an inline policy attached to roles.
type Policy struct {
	PolicyName     string         `json:"PolicyName"`
	PolicyDocument PolicyDocument `json:"PolicyDocument"`
	Roles          []any          `json:"Roles,omitempty"`
}

func (Policy) ResourceType() string { return "AWS::IAM::Policy" }

// PolicyVersion is the current IAM policy language version.
const PolicyVersion = "2012-10-17"

// PolicyDocument is an IAM policy or trust document.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement is one IAM policy statement.
type Statement struct {
	Effect    string   `json:"Effect"`
	Principal any      `json:"Principal,omitempty"`
	Action    []string `json:"Action"`
	Resource  any      `json:"Resource,omitempty"`
}

// ServicePrincipal serializes to {"Service": [...]}.
type ServicePrincipal []string

func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{"Service": p})
}

// Topic is AWS::SNS::Topic.
type Topic struct {
	DisplayName string `json:"DisplayName,omitempty"`
	TopicName   any    `json:"TopicName,omitempty"`
}

func (Topic) ResourceType() string { return "AWS::SNS::Topic" }

// Function is AWS::Lambda::Function.
type Function struct {
	Description string       `json:"Description,omitempty"`
	Code        FunctionCode `json:"Code"`
	Handler     string       `json:"Handler"`
	Role        any          `json:"Role"`
	Runtime     string       `json:"Runtime"`
	MemorySize  int          `json:"MemorySize,omitempty"`
	Timeout     int          `json:"Timeout,omitempty"`
	Environment *Environment `json:"Environment,omitempty"`
}

func (Function) ResourceType() string { return "AWS::Lambda::Function" }

// FunctionCode locates the deployment package. Set S3Bucket and S3Key for a
// packaged binary, or ZipFile for inline source.
type FunctionCode struct {
	S3Bucket any    `json:"S3Bucket,omitempty"`
	S3Key    any    `json:"S3Key,omitempty"`
	ZipFile  string `json:"ZipFile,omitempty"`
}

// Environment holds the function environment variables.
type Environment struct {
	Variables map[string]any `json:"Variables"`
}

// Permission is AWS::Lambda::Permission.
type Permission struct {
	Action       string `json:"Action"`
	FunctionName any    `json:"FunctionName"`
	Principal    string `json:"Principal"`
	SourceArn    any    `json:"SourceArn,omitempty"`
}

func (Permission) ResourceType() string { return "AWS::Lambda::Permission" }
