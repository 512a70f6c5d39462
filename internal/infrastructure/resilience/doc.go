/*
Package resilience provides circuit breakers that protect font origins.

# Overview

A font CDN that is down should not make every preload wait for the full
retry budget. The fetch client keeps one breaker per origin host; once an
origin trips, loads against it fail fast and the preloader degrades to the
faces it could get.

# Usage

	group := resilience.NewGroup(resilience.Settings{
		ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 3 },
	})

	err := group.For("fonts.example.com").Do(func() error {
		return fetch()
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                          Open
*/
package resilience
