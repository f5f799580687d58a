/*
Package client connects to a quorum chain.

A Connection is either Local, driving an in-process application and mining
one block per transaction, or Remote, talking to a tendermint node over
http. Client wraps a Connection with typed queries for every extension and
with transaction signing.
*/
package client
