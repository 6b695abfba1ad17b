// Package models defines the wire types exchanged with the Spotter backend and the small
// client-side value types built on top of them.
//
// The package contains three groups of types:
//
// 1. Requests: bodies the client sends
//   - [WeightliftingRequest], [ClassRequest], [RecipeRequest]
//   - [LogWorkoutRequest], [CreateChallengeRequest], [QuickChallengeRequest]
//   - [Credentials] for login and registration
//
// 2. Responses: envelopes the backend returns
//   - [RoutineResponse], [ClassResponse], [RecipeResponse], [MusclesResponse]
//   - [WorkoutsResponse], [ChallengesResponse], [DebugResponse], [AuthResponse]
//
// 3. Records and options: items inside those envelopes plus [MuscleOption] and [AuthSession]
//
// Numeric fields the backend sometimes sends as strings ("300-500", "8-10") use [FlexString].
package models
