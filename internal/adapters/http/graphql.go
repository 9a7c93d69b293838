package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/locainsight/internal/core/domain"
)

// gqlError carries the public message and a machine-readable code.
type gqlError struct {
	message string
	code    string
}

func (e *gqlError) Error() string { return e.message }

// Extensions implements gqlerrors.ExtendedError.
func (e *gqlError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func recommendationSource(p graphql.ResolveParams) (domain.Recommendation, bool) {
	switch r := p.Source.(type) {
	case domain.Recommendation:
		return r, true
	case *domain.Recommendation:
		return *r, r != nil
	}
	return domain.Recommendation{}, false
}

func optionalFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	recommendationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Recommendation",
		Fields: graphql.Fields{
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"address":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"latitude": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r, _ := recommendationSource(p)
					return optionalFloat(r.Latitude), nil
				},
			},
			"longitude": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r, _ := recommendationSource(p)
					return optionalFloat(r.Longitude), nil
				},
			},
			"point": &graphql.Field{
				Type:        geoPointType,
				Description: "Map marker position, null when coordinates are missing",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r, _ := recommendationSource(p)
					if pt := r.Point(); pt != nil {
						return *pt, nil
					}
					return nil, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"recommendations": &graphql.Field{
				Type:        graphql.NewList(graphql.NewNonNull(recommendationType)),
				Description: "Suggest 3-5 places for a location and optional preferences",
				Args: graphql.FieldConfigArgument{
					"location":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"preferences": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if deps.Recommendations == nil {
						return nil, &gqlError{message: msgConfiguration, code: "internal_error"}
					}
					q := domain.RecommendationQuery{}
					q.Location, _ = p.Args["location"].(string)
					q.Preferences, _ = p.Args["preferences"].(string)

					recs, err := deps.Recommendations.Recommend(p.Context, q)
					if err != nil {
						status, code, msg := classify(err)
						logError(p.Context, status, code, err)
						return nil, &gqlError{message: msg, code: code}
					}
					return recs, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

// GraphQLHandler returns a Fiber handler for GraphQL queries.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
