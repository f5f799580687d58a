/*
Package x contains the authentication helpers shared by all extensions.

Sub-packages are the extensions that make up a quorum chain. The native
balance handling lives in x/cash, contracts are deployed through x/artifact
and the deployable contracts are x/storage and x/multisig. Authentication
is provided by x/sigs (and by x/multisig for wallet conditions). Handlers
never read signatures directly, they receive an Authenticator instead.
*/
package x
