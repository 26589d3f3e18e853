package health

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
)

// ServiceName is the name reported to grpc.health.v1 clients.
const ServiceName = "primind.hydration.v1.SchedulerService"

type grpcChecker struct {
	checker *Checker
}

func (g *grpcChecker) Check(ctx context.Context, req *grpchealth.CheckRequest) (*grpchealth.CheckResponse, error) {
	if req.Service != "" && req.Service != ServiceName {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("unknown service %s", req.Service))
	}

	if g.checker.Check(ctx).Status != StatusHealthy {
		return &grpchealth.CheckResponse{Status: grpchealth.StatusNotServing}, nil
	}
	return &grpchealth.CheckResponse{Status: grpchealth.StatusServing}, nil
}

// GRPCHandler serves the grpc.health.v1 protocol backed by the same checks
// as the readiness probe. It returns the route prefix to mount it under.
func (c *Checker) GRPCHandler() (string, http.Handler) {
	return grpchealth.NewHandler(&grpcChecker{checker: c})
}

// Mount registers the grpc.health.v1 handler on a gin router.
func (c *Checker) Mount(r gin.IRoutes) {
	path, h := c.GRPCHandler()
	r.Any(path+"*method", gin.WrapH(h))
}
