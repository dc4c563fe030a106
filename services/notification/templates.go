package notification

import (
	"fmt"
	"strings"

	"drivewell/models"
)

func welcomeBody(name, email string) string {
	return fmt.Sprintf(`
		<h2>Welcome to DriveWell Garage, %s!</h2>
		<p>Thank you for creating your account with us. Your customer profile has been set up successfully, and you can now use our platform to:</p>
		<ul>
			<li>Book service appointments</li>
			<li>Track your vehicle status</li>
			<li>View service history</li>
			<li>Receive updates &amp; notifications</li>
		</ul>
		<p><b>Registered Email:</b> %s</p>
		<p>If you did not create this account, please contact our support team immediately.</p>
		<br/>
		<p>We&apos;re excited to serve you!<br/><b>DriveWell Garage Team</b></p>
	`, name, email)
}

func temporaryPasswordBody(password string) string {
	return fmt.Sprintf(`
		<h2>Password Reset Successful</h2>
		<p>Hello,</p>
		<p>Your password for your <b>DriveWell Garage</b> account has been reset successfully.</p>
		<p>Here is your new temporary password:</p>
		<p style="padding: 10px 15px; background: #f4f4f4; border-radius: 6px; display: inline-block; font-size: 18px; font-weight: bold;">%s</p>
		<br/>
		<p>Please use this password to log in to your account.
		For your security, we strongly recommend changing your password immediately after logging in.</p>
		<br/>
		<p>If you did not request a password reset, please contact our support team right away.</p>
		<br/>
		<p>Regards,<br/><b>DriveWell Garage Team</b></p>
	`, password)
}

func bookingConfirmationBody(b *models.Booking) string {
	return fmt.Sprintf(`
		<h2>Your Booking is Confirmed</h2>
		<p>We have received your advance payment and reserved your slot.</p>
		<ul>
			<li><b>Vehicle:</b> %s</li>
			<li><b>Service:</b> %s</li>
			<li><b>Branch:</b> %s</li>
			<li><b>Date:</b> %s</li>
		</ul>
		<p>Please drop your vehicle off at the branch on the scheduled date.</p>
		<br/>
		<p>Regards,<br/><b>DriveWell Garage Team</b></p>
	`, b.Vehicle.VehicleName, b.Service, b.Branch.BranchName, b.Date)
}

func paymentConfirmationBody(b *models.Booking, amount float64, method string) string {
	return fmt.Sprintf(`
		<h2>Payment Received</h2>
		<p>We have received your payment of <b>$%.2f</b> via %s for the service below.</p>
		<ul>
			<li><b>Vehicle:</b> %s</li>
			<li><b>Service:</b> %s</li>
			<li><b>Branch:</b> %s</li>
			<li><b>Date:</b> %s</li>
		</ul>
		<p>Thank you for choosing DriveWell Garage.</p>
		<br/>
		<p>Regards,<br/><b>DriveWell Garage Team</b></p>
	`, amount, method, b.Vehicle.VehicleName, b.Service, b.Branch.BranchName, b.Date)
}

func serviceCompletedBody(b *models.Booking, total float64) string {
	var lines strings.Builder
	for _, item := range b.Bill {
		fmt.Fprintf(&lines, "<li>%s &mdash; $%.2f</li>", item.Repair, item.Cost)
	}
	return fmt.Sprintf(`
		<h2>Service Completed</h2>
		<p>The service on your <b>%s</b> is complete and the vehicle is ready for pickup.</p>
		<ul>%s</ul>
		<p><b>Amount due (advance fee deducted):</b> $%.2f</p>
		<p>You can settle the bill online from your bookings page, or pay in cash at the branch.</p>
		<br/>
		<p>Regards,<br/><b>DriveWell Garage Team</b></p>
	`, b.Vehicle.VehicleName, lines.String(), total)
}
