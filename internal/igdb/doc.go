// Package igdb is a thin client for the IGDB v4 catalog API.
//
// Requests are POSTs whose body is an Apicalypse query string
// (`fields ...; where ...; limit N offset M;`) authenticated with the Twitch
// client ID and an app access token. The client returns raw rows and lookup
// maps; merging them into games.Game values is the catalog package's job.
package igdb
