package stack

import (
	"github.com/jrzesz33/civ6_notif/internal/cfn"
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

// APIName is the name of the REST API shown in the console.
const APIName = "Civ6Notifications"

func gatewayRef() intrinsics.Ref {
	return intrinsics.Ref{LogicalName: Gateway}
}

func restAPI() cfn.RestAPI {
	return cfn.RestAPI{Name: APIName}
}

func notifyResource(opts Options) cfn.APIResource {
	return cfn.APIResource{
		RestApiId: gatewayRef(),
		ParentId:  intrinsics.GetAtt{LogicalName: Gateway, Attribute: "RootResourceId"},
		PathPart:  opts.PathPart,
	}
}

// postMethod forwards the request body to the function as its event through
// a non-proxy AWS integration.
func postMethod() cfn.Method {
	return cfn.Method{
		RestApiId:         gatewayRef(),
		ResourceId:        intrinsics.Ref{LogicalName: NotifyResource},
		HttpMethod:        "POST",
		AuthorizationType: "NONE",
		Integration: &cfn.Integration{
			Type:                  "AWS",
			IntegrationHttpMethod: "POST",
			Credentials:           roleArn(),
			Uri: intrinsics.Join{
				Delimiter: "",
				Values: []any{
					"arn:aws:apigateway:",
					intrinsics.AWS_REGION,
					":lambda:path/2015-03-31/functions/",
					functionArn(),
					"/invocations",
				},
			},
			IntegrationResponses: []cfn.IntegrationResponse{{StatusCode: "200"}},
		},
		MethodResponses: []cfn.MethodResponse{{StatusCode: "200"}},
	}
}

func deployment() cfn.Deployment {
	return cfn.Deployment{RestApiId: gatewayRef()}
}

func stage(opts Options) cfn.Stage {
	return cfn.Stage{
		StageName:    opts.StageName,
		RestApiId:    gatewayRef(),
		DeploymentId: intrinsics.Ref{LogicalName: opts.deploymentName()},
	}
}

// endpointURL is the invoke URL the game client posts to.
func endpointURL(opts Options) intrinsics.Join {
	return intrinsics.Join{
		Delimiter: "",
		Values: []any{
			"https://",
			gatewayRef(),
			".execute-api.",
			intrinsics.AWS_REGION,
			".amazonaws.com/",
			opts.StageName,
			"/" + opts.PathPart,
		},
	}
}
