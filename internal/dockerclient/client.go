// Package dockerclient adapts the local Docker daemon as an image existence
// source. Useful for dry runs on machines where rocks were side-loaded into
// the daemon (skopeo copy ... docker-daemon:) instead of pushed to a registry.
package dockerclient

import (
	"context"
	"log/slog"
	"os"

	"github.com/docker/go-sdk/client"

	"github.com/rockplan/rockplan/internal/logs"
)

type dockerClient struct {
	client client.SDKClient
}

// DockerClient reports image presence in the local daemon image store.
// It satisfies the planner's registry.Checker contract.
type DockerClient interface {
	ImageExists(ctx context.Context, imageRef string) bool
	Exists(ctx context.Context, imageRef string) bool
}

func NewDockerClient() (*dockerClient, error) {
	c, err := client.New(
		context.Background(),
		client.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))),
	)
	if err != nil {
		return nil, err
	}

	return &dockerClient{client: c}, nil
}

func (dc *dockerClient) ImageExists(ctx context.Context, imageRef string) bool {
	_, err := dc.client.ImageInspect(ctx, imageRef)
	if err != nil {
		logs.Debugf("docker: image %s not in local daemon: %v", imageRef, err)
	}
	return err == nil
}

// Exists aliases ImageExists so the client plugs in as a registry.Checker.
func (dc *dockerClient) Exists(ctx context.Context, imageRef string) bool {
	return dc.ImageExists(ctx, imageRef)
}
