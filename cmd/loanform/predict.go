package main

import (
	"fmt"

	"loan-approval/internal/features"

	"github.com/spf13/cobra"
)

var predictForm features.Form

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Evaluate one application and print the verdict",
	Long: `Evaluates a single application non-interactively. Every verdict, including
input errors, is printed and exits with status 0.

Example:
  loanform predict --age 30 --gender Male --income 50000 \
    --education Bachelor --marital Single --occupation Engineer`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		v := svc.Evaluate(predictForm)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), v.Message)
		return err
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictForm.Age, "age", "", "applicant age in whole years")
	predictCmd.Flags().StringVar(&predictForm.Gender, "gender", "", "Female or Male")
	predictCmd.Flags().StringVar(&predictForm.Income, "income", "", "annual income")
	predictCmd.Flags().StringVar(&predictForm.Education, "education", "", "Bachelor, Master, High School, Associate or Doctoral")
	predictCmd.Flags().StringVar(&predictForm.Marital, "marital", "", "Single or Married")
	predictCmd.Flags().StringVar(&predictForm.Occupation, "occupation", "", "occupation as named in the training data")
	rootCmd.AddCommand(predictCmd)
}
