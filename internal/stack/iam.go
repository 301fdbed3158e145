package stack

import (
	"github.com/jrzesz33/civ6_notif/internal/cfn"
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

// RolePolicyName is the inline policy name attached to the execution role.
const RolePolicyName = "Civ6Notif_RolePolicy"

func executionRole() cfn.Role {
	return cfn.Role{
		Path: "/",
		AssumeRolePolicyDocument: cfn.PolicyDocument{
			Version: cfn.PolicyVersion,
			Statement: []cfn.Statement{{
				Effect:    "Allow",
				Principal: cfn.ServicePrincipal{"lambda.amazonaws.com", "apigateway.amazonaws.com"},
				Action:    []string{"sts:AssumeRole"},
			}},
		},
	}
}

// rolePolicy grants its actions on every resource.
func rolePolicy() cfn.Policy {
	return cfn.Policy{
		PolicyName: RolePolicyName,
		PolicyDocument: cfn.PolicyDocument{
			Version: cfn.PolicyVersion,
			Statement: []cfn.Statement{
				{
					Effect:   "Allow",
					Action:   []string{"logs:CreateLogGroup", "logs:CreateLogStream", "logs:PutLogEvents"},
					Resource: "*",
				},
				{
					Effect:   "Allow",
					Action:   []string{"sns:Publish"},
					Resource: "*",
				},
				{
					Effect:   "Allow",
					Action:   []string{"lambda:*"},
					Resource: "*",
				},
			},
		},
		Roles: []any{intrinsics.Ref{LogicalName: ExecutionRole}},
	}
}

func roleArn() intrinsics.GetAtt {
	return intrinsics.GetAtt{LogicalName: ExecutionRole, Attribute: "Arn"}
}
