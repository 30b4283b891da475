package domain

import (
	"fmt"
	"path"
	"strings"
)

// DockerEnv selects a deployment environment.
// It is a closed enumeration with no lifecycle of its own.
type DockerEnv string

// Available environments.
const (
	EnvDev  DockerEnv = "dev"
	EnvTest DockerEnv = "test"
	EnvProd DockerEnv = "prod"
)

// AllDockerEnvs returns every environment.
func AllDockerEnvs() []DockerEnv {
	return []DockerEnv{EnvDev, EnvTest, EnvProd}
}

// IsValid returns true if the environment is recognised.
func (e DockerEnv) IsValid() bool {
	switch e {
	case EnvDev, EnvTest, EnvProd:
		return true
	default:
		return false
	}
}

// String returns the lowercase environment name.
func (e DockerEnv) String() string {
	return string(e)
}

// ParseDockerEnv converts a string to a DockerEnv.
func ParseDockerEnv(s string) (DockerEnv, error) {
	e := DockerEnv(strings.ToLower(s))
	if !e.IsValid() {
		return "", fmt.Errorf("%w: unknown environment %q (want dev, test or prod)", ErrInvalidInput, s)
	}
	return e, nil
}

// DockerAction is one docker lifecycle operation.
type DockerAction string

// Available docker actions.
const (
	DockerBuild   DockerAction = "build"
	DockerRun     DockerAction = "run"
	DockerStop    DockerAction = "stop"
	DockerRestart DockerAction = "restart"
	DockerUpgrade DockerAction = "upgrade"
)

// AllDockerActions returns every docker action.
func AllDockerActions() []DockerAction {
	return []DockerAction{DockerBuild, DockerRun, DockerStop, DockerRestart, DockerUpgrade}
}

// IsValid returns true if the action is recognised.
func (a DockerAction) IsValid() bool {
	switch a {
	case DockerBuild, DockerRun, DockerStop, DockerRestart, DockerUpgrade:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (a DockerAction) String() string {
	return string(a)
}

// ParseDockerAction converts a string to a DockerAction.
func ParseDockerAction(s string) (DockerAction, error) {
	a := DockerAction(strings.ToLower(s))
	if !a.IsValid() {
		return "", fmt.Errorf("%w: unknown docker action %q", ErrInvalidInput, s)
	}
	return a, nil
}

// DockerfilePath returns the per-environment Dockerfile, relative to the project.
func DockerfilePath(env DockerEnv) string {
	return path.Join("docker", env.String()+".Dockerfile")
}

// DockerTag derives "{project}_{env}:{version}".
func DockerTag(project string, env DockerEnv, version string) string {
	return fmt.Sprintf("%s_%s:%s", project, env, version)
}

// DockerName derives a container name from a tag by replacing ':' with '_'.
func DockerName(tag string) string {
	return strings.ReplaceAll(tag, ":", "_")
}
