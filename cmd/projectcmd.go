package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ola/console"
	"github.com/randalmurphal/ola/project"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage prompt projects (reusable goals, contexts, files)",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := project.NewManager()
		if err != nil {
			return err
		}
		projects, err := mgr.List()
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			console.Infof("no projects yet; create one with 'ola project create <name>'")
			return nil
		}
		activeID, _ := mgr.ActiveID()
		for _, p := range projects {
			marker := " "
			if p.ID == activeID {
				marker = "*"
			}
			fmt.Printf("%s %s  %s  (%d goals, %d contexts, %d files)\n",
				marker, p.ID, p.Name, len(p.Goals), len(p.Contexts), len(p.Files))
		}
		return nil
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project and make it active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := project.NewManager()
		if err != nil {
			return err
		}
		p, err := mgr.Create(args[0])
		if err != nil {
			return err
		}
		if err := mgr.SetActive(p.ID); err != nil {
			return err
		}
		console.Successf("created project %s (%s)", p.Name, p.ID)
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-name>",
	Short: "Delete a project and its files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, p, err := resolveProject(args[0])
		if err != nil {
			return err
		}
		if !console.Confirm(fmt.Sprintf("Delete project %q and all its files", p.Name), false) {
			return nil
		}
		if err := mgr.Delete(p.ID); err != nil {
			return err
		}
		console.Successf("deleted %s", p.Name)
		return nil
	},
}

var projectSetCmd = &cobra.Command{
	Use:   "set <id-or-name>",
	Short: "Make a project active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, p, err := resolveProject(args[0])
		if err != nil {
			return err
		}
		if err := mgr.SetActive(p.ID); err != nil {
			return err
		}
		console.Successf("active project: %s", p.Name)
		return nil
	},
}

var projectUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Clear the active project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := project.NewManager()
		if err != nil {
			return err
		}
		if err := mgr.ClearActive(); err != nil {
			return err
		}
		console.Successf("no active project")
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [id-or-name]",
	Short: "Show a project (the active one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			p   *project.Project
			err error
		)
		if len(args) == 1 {
			_, p, err = resolveProject(args[0])
		} else {
			var mgr *project.Manager
			mgr, err = project.NewManager()
			if err == nil {
				p, err = mgr.Active()
			}
		}
		if err != nil {
			return err
		}

		fmt.Printf("Project: %s (%s)\n", p.Name, p.ID)
		fmt.Printf("Created: %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Println("Goals:")
		for i, g := range p.Goals {
			fmt.Printf("  %d) %s\n", i+1, g)
		}
		fmt.Println("Contexts:")
		for i, c := range p.Contexts {
			fmt.Printf("  %d) %s\n", i+1, c)
		}
		fmt.Println("Files:")
		for _, f := range p.Files {
			fmt.Printf("  %s (%s, %d bytes)\n", f.Name, f.MIME, f.Size)
		}
		return nil
	},
}

var projectAddGoalCmd = &cobra.Command{
	Use:   "add-goal <text>",
	Short: "Add a goal to the active project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withActiveProject(func(mgr *project.Manager, p *project.Project) error {
			p.AddGoal(args[0])
			return mgr.Save(p)
		})
	},
}

var projectRemoveGoalCmd = &cobra.Command{
	Use:   "remove-goal <number>",
	Short: "Remove a goal from the active project by its number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("expected a goal number, got %q", args[0])
		}
		return withActiveProject(func(mgr *project.Manager, p *project.Project) error {
			if !p.RemoveGoal(n - 1) {
				return fmt.Errorf("no goal %d", n)
			}
			return mgr.Save(p)
		})
	},
}

var projectAddContextCmd = &cobra.Command{
	Use:   "add-context <text>",
	Short: "Add a context line to the active project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withActiveProject(func(mgr *project.Manager, p *project.Project) error {
			p.AddContext(args[0])
			return mgr.Save(p)
		})
	},
}

var projectRemoveContextCmd = &cobra.Command{
	Use:   "remove-context <number>",
	Short: "Remove a context line from the active project by its number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("expected a context number, got %q", args[0])
		}
		return withActiveProject(func(mgr *project.Manager, p *project.Project) error {
			if !p.RemoveContext(n - 1) {
				return fmt.Errorf("no context %d", n)
			}
			return mgr.Save(p)
		})
	},
}

var projectUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Attach a file to the active project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withActiveProject(func(mgr *project.Manager, p *project.Project) error {
			f, err := mgr.UploadFile(p, args[0])
			if err != nil {
				return err
			}
			console.Successf("attached %s (%s)", f.Name, f.MIME)
			return nil
		})
	},
}

var projectRemoveFileCmd = &cobra.Command{
	Use:   "remove-file <name>",
	Short: "Remove an attached file from the active project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withActiveProject(func(mgr *project.Manager, p *project.Project) error {
			return mgr.RemoveFile(p, args[0])
		})
	},
}

var projectFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the active project's files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withActiveProject(func(mgr *project.Manager, p *project.Project) error {
			if len(p.Files) == 0 {
				console.Infof("no files attached")
				return nil
			}
			for _, f := range p.Files {
				fmt.Printf("%s  %s  %d bytes\n", f.Name, f.MIME, f.Size)
			}
			return nil
		})
	},
}

var projectRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the prompt flow with the active project's material",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The prompt flow folds in the active project on its own;
		// this subcommand exists so project workflows read naturally.
		return runPrompt(projectRunFlags)
	},
}

var projectRunFlags promptFlags

func init() {
	addPromptFlags(projectRunCmd, &projectRunFlags)
	projectCmd.AddCommand(projectListCmd, projectCreateCmd, projectDeleteCmd,
		projectSetCmd, projectUnsetCmd, projectShowCmd,
		projectAddGoalCmd, projectRemoveGoalCmd,
		projectAddContextCmd, projectRemoveContextCmd,
		projectUploadCmd, projectRemoveFileCmd, projectFilesCmd,
		projectRunCmd)
	rootCmd.AddCommand(projectCmd)
}

func resolveProject(idOrName string) (*project.Manager, *project.Project, error) {
	mgr, err := project.NewManager()
	if err != nil {
		return nil, nil, err
	}
	p, err := mgr.Find(idOrName)
	if err != nil {
		return nil, nil, err
	}
	return mgr, p, nil
}

func withActiveProject(fn func(*project.Manager, *project.Project) error) error {
	mgr, err := project.NewManager()
	if err != nil {
		return err
	}
	p, err := mgr.Active()
	if err != nil {
		return fmt.Errorf("no active project; run 'ola project set <name>' first")
	}
	return fn(mgr, p)
}
