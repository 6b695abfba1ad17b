// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output the raw JSON payload",
		},
		&cli.BoolFlag{
			Name:  "html",
			Usage: "Output an HTML fragment",
		},
	}
}

// setupCommand creates config.toml and prepares the local session database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the local database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Revert the most recent migration instead of applying pending ones",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles session management
func authCommand(r *Runner) *cli.Command {
	credentialFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Account email",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password",
				Sources: cli.EnvVars("SPOTTER_PASSWORD"),
			},
		}
	}

	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the stored session",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Sign in and store the session token",
				Flags:  credentialFlags(),
				Action: r.AuthLogin,
			},
			{
				Name:   "register",
				Usage:  "Create an account and store the session token",
				Flags:  credentialFlags(),
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "End the session on the server and clear it locally",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Verify the stored session with the server",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.AuthStatus,
			},
			{
				Name:  "import",
				Usage: "Store a session token copied from the browser (Copy as cURL)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to a file containing the cURL command",
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "Email to remember alongside the token",
					},
				},
				Action: r.AuthImport,
			},
		},
	}
}

// workoutCommand handles muscle lookups, routine suggestions and workout logging
func workoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "workout",
		Aliases: []string{"w"},
		Usage:   "Find weightlifting routines and log workouts",
		Commands: []*cli.Command{
			{
				Name:      "muscles",
				Usage:     "List the muscles of a body part",
				ArgsUsage: "<body part>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "part"},
				},
				Flags:  outputFlags()[:1],
				Action: r.protected(r.WorkoutMuscles),
			},
			{
				Name:  "suggest",
				Usage: "Suggest a weightlifting routine",
				Flags: append([]cli.Flag{
					&cli.StringSliceFlag{
						Name:    "part",
						Aliases: []string{"b"},
						Usage:   "Body part to train (repeatable; repeating a part deselects it)",
					},
					&cli.StringSliceFlag{
						Name:    "muscle",
						Aliases: []string{"m"},
						Usage:   "Muscle to focus on (repeatable)",
					},
				}, outputFlags()...),
				Action: r.protected(r.WorkoutSuggest),
			},
			{
				Name:  "log",
				Usage: "Log a workout to the feed or your profile",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "What you did",
					},
					&cli.StringFlag{
						Name:  "pr",
						Usage: "Personal record",
					},
					&cli.StringFlag{
						Name:  "media",
						Usage: "Photo to attach",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save privately to your profile instead of posting to the feed",
					},
				}, outputFlags()...),
				Action: r.protected(r.WorkoutLog),
			},
		},
	}
}

// recipeCommand handles recipe suggestions
func recipeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "recipe",
		Usage: "Find recipes",
		Commands: []*cli.Command{
			{
				Name:  "suggest",
				Usage: "Suggest a recipe for a meal and fitness goal",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "meal",
						Usage: "Meal type (breakfast, lunch, dinner, snack)",
					},
					&cli.StringFlag{
						Name:  "goal",
						Usage: "Fitness goal (e.g. build_muscle)",
					},
				}, outputFlags()...),
				Action: r.protected(r.RecipeSuggest),
			},
		},
	}
}

// classCommand handles fitness class suggestions
func classCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "class",
		Usage: "Find fitness classes",
		Commands: []*cli.Command{
			{
				Name:  "find",
				Usage: "Find classes by location and type",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "location",
						Usage: "on_campus or off_campus",
						Value: "on_campus",
					},
					&cli.StringSliceFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Class type (repeatable)",
					},
				}, outputFlags()...),
				Action: r.protected(r.ClassFind),
			},
		},
	}
}

// challengeCommand handles challenge creation
func challengeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "challenge",
		Usage: "Create fitness challenges",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a challenge with goals and friends",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "start", Usage: "Start date (MM/DD/YYYY)"},
					&cli.StringFlag{Name: "end", Usage: "End date (MM/DD/YYYY)"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Challenge description"},
					&cli.StringFlag{Name: "privacy", Usage: "public or private"},
					&cli.StringSliceFlag{Name: "goal", Usage: "Goal (repeatable)"},
					&cli.StringSliceFlag{Name: "friend", Usage: "Friend to invite (repeatable)"},
					&cli.BoolFlag{Name: "routine", Usage: "Attach your routine"},
				}, outputFlags()...),
				Action: r.protected(r.ChallengeCreate),
			},
			{
				Name:  "save",
				Usage: "Save a quick challenge",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Challenge title"},
					&cli.StringFlag{Name: "start", Usage: "Start date"},
					&cli.StringFlag{Name: "end", Usage: "End date"},
					&cli.StringFlag{Name: "goal", Usage: "Goal"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Challenge description"},
					&cli.StringSliceFlag{Name: "invite", Usage: "Friend to invite (repeatable)"},
					&cli.BoolFlag{Name: "private", Usage: "Only visible to invitees"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.protected(r.ChallengeSave),
			},
		},
	}
}

// profileCommand handles the workout and challenge history
func profileCommand(r *Runner) *cli.Command {
	userFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "User ID (defaults to profile.user_id)",
		}
	}

	return &cli.Command{
		Name:  "profile",
		Usage: "Show your workout and challenge history",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the profile",
				Flags:  append([]cli.Flag{userFlag()}, outputFlags()...),
				Action: r.protected(r.ProfileShow),
			},
			{
				Name:  "serve",
				Usage: "Serve the rendered profile page locally",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (defaults to preview.host:preview.port)",
					},
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Do not open the page in a browser",
					},
				},
				Action: r.protected(r.ProfileServe),
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the backend API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints the response body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "compact",
						Usage: "Do not indent JSON output",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive workout finder.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive workout finder",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs here while the UI is running",
				Value: "./tmp/spotter-tui.log",
			},
		},
		Action: r.protected(r.TUI),
	}
}
