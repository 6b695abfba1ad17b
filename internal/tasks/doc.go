// Package tasks holds the per-page view state of the client and the flows that turn it into
// backend requests.
//
// # Preference Collectors
//
// Each page owns a fresh collector; nothing is shared between pages:
//   - [WorkoutFinder] : body parts and muscles, then a weightlifting routine (the suggestion flow)
//   - [RecipeFinder] : meal type and fitness goal, then a recipe
//   - [ClassFinder] : location and class types, then class suggestions
//   - [WorkoutLogger] : description, personal record and media, then a logged workout
//   - [ChallengeBuilder] : dates, description, privacy, goals and friends, then a challenge
//
// Collectors validate before any request is sent and report failures as [*ValidationError],
// which matches [shared.ErrValidation].
//
// # Suggestion Flow
//
// [WorkoutFinder] moves through the [FlowState] values NoSelection, PartialSelection,
// MusclesLoaded, Submitting and then Result or Failed. Muscle lookups run one body part at a time
// in selection order and are merged into an [OrderedSet] keyed by muscle value, so the option
// order follows selection order and never holds duplicates. A failed lookup is logged and skipped.
//
// # Submit Control
//
// Every submit goes through a [Control]: it is disabled and relabelled "LOADING..." while the
// request is in flight and always restored afterwards. A second submit on the same control while
// one is running is rejected with [shared.ErrSubmitInFlight].
//
// # Progress Reporting
//
// Long operations emit [ProgressUpdate] values on an optional channel. Sends never block.
//
// # Profile
//
// [ProfileLoader] probes the backend and then loads workout and challenge history independently.
package tasks
