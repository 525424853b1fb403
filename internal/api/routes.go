package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"docrag/internal/domain"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("/health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/search").
			To(handler.Search).
			Doc("Search the document index").
			Metadata(restfulspec.KeyOpenAPITags, []string{"retrieval"}).
			Writes(domain.SearchResponse{}).
			Returns(200, "OK", domain.SearchResponse{}).
			Returns(400, "Bad Request", ErrorResponse{}).
			Returns(502, "Embedding Provider Error", ErrorResponse{}))

	ws.
		Route(ws.POST("/fetch").
			To(handler.Fetch).
			Doc("Fetch a chunk by id").
			Metadata(restfulspec.KeyOpenAPITags, []string{"retrieval"}).
			Writes(domain.FetchResponse{}).
			Returns(200, "OK", domain.FetchResponse{}).
			Returns(400, "Bad Request", ErrorResponse{}))

	container.Add(ws)
}
