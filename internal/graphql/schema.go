// File: internal/graphql/schema.go
package graphql

import (
	"fmt"
	"net/http"

	"converse_backend/internal/auth"
	"converse_backend/internal/config"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"go.uber.org/zap"
)

// Resolver wires the GraphQL operations to the auth workflows. Resolvers
// receive the request context, which carries the loaded session.
type Resolver struct {
	authService *auth.Service
	logger      *zap.Logger
}

// NewResolver creates the resolver set.
func NewResolver(authService *auth.Service, logger *zap.Logger) *Resolver {
	return &Resolver{authService: authService, logger: logger}
}

// NewSchema builds the executable schema: query { me } and the four auth
// mutations.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.me,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(userResponseType),
				Args: graphql.FieldConfigArgument{
					"options": &graphql.ArgumentConfig{Type: graphql.NewNonNull(registerInputType)},
				},
				Resolve: r.register,
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(userResponseType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.login,
			},
			"githubLogin": &graphql.Field{
				Type: graphql.NewNonNull(userResponseType),
				Args: graphql.FieldConfigArgument{
					"accessToken":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"refreshToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.githubLogin,
			},
			"logout": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Resolve: r.logout,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// NewHandler mounts the schema on the standard GraphQL-over-HTTP handler.
// GraphiQL is only served outside release mode.
func NewHandler(schema graphql.Schema, cfg *config.Config) http.Handler {
	return handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   !cfg.IsProduction(),
		GraphiQL: !cfg.IsProduction(),
	})
}

func (r *Resolver) me(p graphql.ResolveParams) (interface{}, error) {
	dbUser, err := r.authService.CurrentUser(p.Context)
	if err != nil {
		r.logger.Error("me query failed", zap.Error(err))
		return nil, errServer
	}
	if dbUser == nil {
		return nil, nil
	}
	return marshalUser(dbUser), nil
}

func (r *Resolver) register(p graphql.ResolveParams) (interface{}, error) {
	options, ok := p.Args["options"].(map[string]interface{})
	if !ok {
		return nil, errServer
	}
	username, _ := options["username"].(string)
	email, _ := options["email"].(string)
	password, _ := options["password"].(string)

	res, err := r.authService.Register(p.Context, username, email, password)
	if err != nil {
		r.logger.Error("register mutation failed", zap.Error(err))
		return nil, errServer
	}
	return marshalResult(res), nil
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	username, _ := p.Args["username"].(string)
	password, _ := p.Args["password"].(string)

	res, err := r.authService.Login(p.Context, username, password)
	if err != nil {
		r.logger.Error("login mutation failed", zap.Error(err))
		return nil, errServer
	}
	return marshalResult(res), nil
}

func (r *Resolver) githubLogin(p graphql.ResolveParams) (interface{}, error) {
	accessToken, _ := p.Args["accessToken"].(string)
	refreshToken, _ := p.Args["refreshToken"].(string)

	res, err := r.authService.GitHubLogin(p.Context, accessToken, refreshToken)
	if err != nil {
		r.logger.Error("githubLogin mutation failed", zap.Error(err))
		return nil, errServer
	}
	return marshalResult(res), nil
}

func (r *Resolver) logout(p graphql.ResolveParams) (interface{}, error) {
	return r.authService.Logout(p.Context), nil
}

// errServer is what callers see when a store or other collaborator fails
// unexpectedly. Details stay in the logs.
var errServer = fmt.Errorf("internal server error")
