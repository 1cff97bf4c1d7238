// Package config manages user-level settings stored at
// ~/.create-dstack-app/config.yaml and overridable through
// CREATE_DSTACK_APP_* environment variables: the install, version-control and
// dev commands, the minimum Node.js version, the templates directory and the
// log level. The settings file is checked against an embedded JSON schema.
package config
