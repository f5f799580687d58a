/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration entity in the database, stored
under the "_c:<package name>" key. The initial value is loaded from the genesis
file (app_state.conf.<package name>) and can later be changed by the
configuration owner with an update message handled by
UpdateConfigurationHandler.
*/
package gconf
