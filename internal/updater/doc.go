// Package updater tells users when a newer create-dstack-app release exists.
// The latest GitHub release is fetched on demand (`create-dstack-app version
// --check`) and remembered in a small JSON cache under the config directory;
// a scaffold run only reads that cache and never touches the network.
package updater
