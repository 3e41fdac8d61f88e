// File: internal/graphql/types.go
package graphql

import (
	"time"

	"converse_backend/internal/auth"
	"converse_backend/internal/common"
	"converse_backend/internal/identity"
	"converse_backend/internal/user"

	"github.com/graphql-go/graphql"
)

var loginTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "LoginType",
	Values: graphql.EnumValueConfigMap{
		"EMAIL":  &graphql.EnumValueConfig{Value: string(user.LoginTypeEmail)},
		"GITHUB": &graphql.EnumValueConfig{Value: string(user.LoginTypeGitHub)},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"uid":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"userId":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"loginType": &graphql.Field{Type: graphql.NewNonNull(loginTypeEnum)},
		"username":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var fieldErrorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "FieldError",
	Fields: graphql.Fields{
		"field":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

// ProviderSession is deliberately its own type: the provider's session
// material shares nothing with the User row.
var providerSessionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProviderSession",
	Fields: graphql.Fields{
		"accessToken":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"tokenType":    &graphql.Field{Type: graphql.String},
		"expiresIn":    &graphql.Field{Type: graphql.Int},
		"refreshToken": &graphql.Field{Type: graphql.String},
	},
})

var userResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UserResponse",
	Fields: graphql.Fields{
		"errors":  &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(fieldErrorType))},
		"user":    &graphql.Field{Type: userType},
		"session": &graphql.Field{Type: providerSessionType},
	},
})

var registerInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "RegisterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

func marshalUser(u *user.User) map[string]interface{} {
	if u == nil {
		return nil
	}
	return map[string]interface{}{
		"uid":       u.ID.String(),
		"userId":    u.ExternalID,
		"loginType": string(u.LoginType),
		"username":  u.Username,
		"email":     u.Email,
		"createdAt": u.CreatedAt.Format(time.RFC3339),
		"updatedAt": u.UpdatedAt.Format(time.RFC3339),
	}
}

func marshalFieldErrors(errs []common.FieldError) []map[string]interface{} {
	if len(errs) == 0 {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(errs))
	for _, e := range errs {
		out = append(out, map[string]interface{}{
			"field":   e.Field,
			"message": e.Message,
		})
	}
	return out
}

func marshalSession(s *identity.ProviderSession) map[string]interface{} {
	if s == nil {
		return nil
	}
	return map[string]interface{}{
		"accessToken":  s.AccessToken,
		"tokenType":    s.TokenType,
		"expiresIn":    s.ExpiresIn,
		"refreshToken": s.RefreshToken,
	}
}

func marshalResult(res *auth.Result) map[string]interface{} {
	return map[string]interface{}{
		"errors":  marshalFieldErrors(res.Errors),
		"user":    marshalUser(res.User),
		"session": marshalSession(res.Session),
	}
}
