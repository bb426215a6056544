package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/mmcdole/campus-transit/pkg/authorization"
	"github.com/mmcdole/campus-transit/pkg/logging"
	"github.com/mmcdole/campus-transit/pkg/portal"
	"github.com/mmcdole/campus-transit/pkg/schedule"
	"github.com/mmcdole/campus-transit/pkg/server"
	"github.com/mmcdole/campus-transit/pkg/status"
	"github.com/spf13/cobra"
)

func (a *app) signinCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in, replacing any current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(a.in, a.out)
			if err := p.fill(&username, "Username", false); err != nil {
				return err
			}
			if err := p.fill(&password, "Password", true); err != nil {
				return err
			}

			sess, err := a.portal.Login(username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Welcome, %s (%s)\n", sess.FullName, sess.Role.Label())
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func (a *app) signupCmd() *cobra.Command {
	var req portal.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a student account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(a.in, a.out)
			fields := []struct {
				value  *string
				label  string
				hidden bool
			}{
				{&req.FullName, "Full name", false},
				{&req.Username, "Username", false},
				{&req.Email, "Email", false},
				{&req.Password, "Password", true},
				{&req.ConfirmPassword, "Confirm password", true},
			}
			for _, f := range fields {
				if err := p.fill(f.value, f.label, f.hidden); err != nil {
					return err
				}
			}

			if err := a.portal.Signup(req); err != nil {
				return err
			}
			fmt.Fprintln(a.out, portal.SignupSuccessMessage)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "full name")
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm-password", "", "password again (prompted when omitted)")
	return cmd
}

func (a *app) signoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.portal.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Signed out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := portal.ProfileOf(a.portal.Current())
			if profile == nil {
				fmt.Fprintln(a.out, "Not signed in.")
				return nil
			}
			fmt.Fprintf(a.out, "%s (%s)\n%s\n%s\n", profile.FullName, profile.Username, profile.Email, profile.RoleLabel)
			return nil
		},
	}
}

func (a *app) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <screen>",
		Short: "Open a screen as the signed-in user",
		Long: `Open a screen as the signed-in user.

Screens: landing, signin, signup, dashboard, bus-details <schedule-id>,
admin-buses, admin-routes, admin-schedules, admin-drivers`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			screen := args[0]
			switch d := a.portal.Navigate(screen); d {
			case authorization.Allow:
			case authorization.RedirectToSignIn:
				fmt.Fprintf(a.out, "Please sign in first (%s).\n", d.Target())
				return nil
			default:
				fmt.Fprintf(a.out, "Page not found (%s).\n", d.Target())
				return nil
			}
			return a.render(screen, args[1:])
		},
	}
}

// render prints a screen the session was allowed to open
func (a *app) render(screen string, args []string) error {
	switch screen {
	case authorization.ScreenDashboard:
		view, err := a.portal.Dashboard()
		if err != nil {
			return err
		}
		printDashboard(a.out, view)
	case authorization.ScreenBusDetails:
		if len(args) == 0 {
			return errors.New("bus-details needs a schedule id")
		}
		details, err := a.portal.BusDetails(args[0])
		if err != nil {
			return err
		}
		printDetails(a.out, details)
	case authorization.ScreenAdminBuses:
		buses, err := a.portal.AdminBuses()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCAPACITY\tPLATE")
		for _, b := range buses {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", b.ID, b.Name, b.Capacity, b.PlateNumber)
		}
		return tw.Flush()
	case authorization.ScreenAdminRoutes:
		routes, err := a.portal.AdminRoutes()
		if err != nil {
			return err
		}
		for _, r := range routes {
			fmt.Fprintf(a.out, "%s  %s: %s\n", r.ID, r.Name, stopNames(r))
		}
	case authorization.ScreenAdminSchedules:
		list, err := a.portal.AdminSchedules()
		if err != nil {
			return err
		}
		printSchedules(a.out, list)
	case authorization.ScreenAdminDrivers:
		drivers, err := a.portal.AdminDrivers()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPHONE")
		for _, d := range drivers {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name, d.Phone)
		}
		return tw.Flush()
	default:
		s, _ := a.portal.Authorizer().Screen(screen)
		fmt.Fprintf(a.out, "%s (%s)\n", s.Title, s.Path)
	}
	return nil
}

func (a *app) schedulesCmd() *cobra.Command {
	var direction string

	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "List the buses available to the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if d := a.portal.Navigate(authorization.ScreenDashboard); d != authorization.Allow {
				fmt.Fprintf(a.out, "Please sign in first (%s).\n", d.Target())
				return nil
			}
			view, err := a.portal.Dashboard()
			if err != nil {
				return err
			}

			switch schedule.Direction(direction) {
			case "":
				printGroups(a.out, schedule.FromCampus, view.FromCampus)
				printGroups(a.out, schedule.ToCampus, view.ToCampus)
			case schedule.FromCampus:
				printGroups(a.out, schedule.FromCampus, view.FromCampus)
			case schedule.ToCampus:
				printGroups(a.out, schedule.ToCampus, view.ToCampus)
			default:
				return fmt.Errorf("unknown direction %q (use from_cuet or to_cuet)", direction)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&direction, "direction", "", "from_cuet or to_cuet")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portal over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.New(&server.Config{
				ListenAddr: a.config.ListenAddr,
				Port:       a.config.Port,
			}, a.portal)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			statusWriter, err := status.New(a.config.StatusDir, time.Duration(a.config.StatusInterval)*time.Second, version)
			if err != nil {
				return fmt.Errorf("failed to create status writer: %w", err)
			}
			statusWriter.SetMetricsProvider(srv)
			if err := statusWriter.WriteStartFile(); err != nil {
				logging.App.Warn("Could not write start file", "error", err)
			}
			statusWriter.StartHeartbeat()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			fmt.Fprintf(a.out, "Starting campus transit portal %s on http://%s\n", version, srv.Addr())

			select {
			case sig := <-sigCh:
				logging.App.Info("Shutting down", "signal", sig.String())
				stopErr := srv.Stop()
				if err := statusWriter.Shutdown("signal_" + strings.ToUpper(sig.String())); err != nil {
					logging.App.Warn("Could not write stop file", "error", err)
				}
				return stopErr
			case err := <-errCh:
				reason := "stopped"
				if err != nil {
					reason = "error"
				}
				if serr := statusWriter.Shutdown(reason); serr != nil {
					logging.App.Warn("Could not write stop file", "error", serr)
				}
				return err
			}
		},
	}
}

func printDashboard(w io.Writer, view *portal.Dashboard) {
	fmt.Fprintf(w, "Welcome back, %s [%s]\n\n", view.User.FullName, view.User.RoleLabel)
	fmt.Fprintf(w, "Available buses: %d\n", view.Stats.Buses)
	fmt.Fprintf(w, "Active routes:   %d\n", view.Stats.Routes)
	next := view.NextDeparture
	if view.NextBus != "" {
		next += " (" + view.NextBus + ")"
	} else {
		next += " (No more today)"
	}
	fmt.Fprintf(w, "Next departure:  %s\n", next)

	var names []string
	for _, s := range view.Screens {
		names = append(names, s.Name)
	}
	fmt.Fprintf(w, "Screens:         %s\n", strings.Join(names, ", "))
}

func printGroups(w io.Writer, direction schedule.Direction, groups []schedule.Group) {
	fmt.Fprintf(w, "%s\n", direction.Label())
	if len(groups) == 0 {
		fmt.Fprintln(w, "  No buses scheduled for this direction.")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "  %s\n", g.Label)
		for _, d := range g.Schedules {
			fmt.Fprintf(w, "    %-6s %-14s %s\n", d.ID, d.Bus.Name, d.Route.Name)
		}
	}
}

func printSchedules(w io.Writer, list []schedule.Details) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tDIRECTION\tBUS\tROUTE\tDRIVER\tFOR")
	for _, d := range list {
		var roles []string
		for _, r := range d.Category {
			roles = append(roles, r.Label())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, schedule.FormatTime(d.DepartureTime), d.Direction.Label(),
			d.Bus.Name, d.Route.Name, d.Driver.Name, strings.Join(roles, ", "))
	}
	tw.Flush()
}

func printDetails(w io.Writer, d *schedule.Details) {
	fmt.Fprintf(w, "%s (%s)\n", d.Bus.Name, d.Bus.PlateNumber)
	fmt.Fprintf(w, "Departure: %s, %s\n", schedule.FormatTime(d.DepartureTime), d.Direction.Label())
	fmt.Fprintf(w, "Route:     %s\n", d.Route.Name)
	fmt.Fprintf(w, "Stops:     %s\n", stopNames(d.Route))
	fmt.Fprintf(w, "Driver:    %s, %s\n", d.Driver.Name, d.Driver.Phone)
	fmt.Fprintf(w, "Capacity:  %d seats\n", d.Bus.Capacity)
}

func stopNames(r schedule.Route) string {
	names := make([]string, len(r.Stops))
	for i, s := range r.Stops {
		names[i] = s.Name
	}
	return strings.Join(names, " → ")
}
